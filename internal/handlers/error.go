package handlers

import (
	"fmt"
	"net/http"

	"github.com/diewo77/ezpay-app/internal/view"
)

// RenderError writes the shared error page with the given status. The error
// detail is included only in development mode.
func RenderError(w http.ResponseWriter, status int, err error, dev bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := map[string]any{
		"Title":   "Error",
		"Status":  status,
		"Message": http.StatusText(status),
	}
	if dev && err != nil {
		data["Detail"] = err.Error()
	}
	if rerr := view.Render(w, "error.html", data); rerr != nil {
		fmt.Fprintf(w, "%d %s", status, http.StatusText(status))
	}
}
