package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	// Templates resolve whether the process runs from the repo root or a
	// subdir (e.g. go test inside internal/handlers).
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the shared template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
		"year":  func() int { return time.Now().Year() },
	}
}

// Render executes the named page template wrapped in layout.html.
// name is the page filename (e.g. "ezpay.html"); the page must define a
// "content" block.
func Render(w http.ResponseWriter, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return execute(w, t, data)
		}
	}
	t, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(
		filepath.Join(baseDir, "layout.html"),
		filepath.Join(baseDir, name),
	)
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return execute(w, t, data)
}

func execute(w http.ResponseWriter, t *template.Template, data map[string]any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.Execute(w, data)
}
