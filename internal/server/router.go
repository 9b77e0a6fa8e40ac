package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/ezpay-app/internal/handlers"
	"github.com/diewo77/ezpay-app/internal/httpx"
	"github.com/diewo77/ezpay-app/internal/services"
	"github.com/diewo77/ezpay-app/internal/view"
)

// New constructs the root http.Handler with all routes and middlewares applied.
// The store handle is injected; nothing here touches process-global state.
func New(db *gorm.DB, logger *zap.Logger, dev bool) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(withRecover(logger, dev))

	receiptSvc := services.NewReceiptService(db)
	chargeSvc := services.NewChargeService(db, receiptSvc)

	rh := handlers.NewReceiptHandler(receiptSvc, dev)
	eh := handlers.NewEZPayHandler(receiptSvc, chargeSvc, dev)
	th := handlers.NewTaskHandler(db, dev)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		_ = view.Render(w, "index.html", map[string]any{"Title": "EZPay Demo"})
	})

	r.Get("/receipt", rh.Show)
	r.Post("/receipt", rh.AddItem)
	r.Post("/receipt/reset", rh.Reset)

	r.Get("/ezpay", eh.Show)
	r.Post("/ezpay/charge", eh.Charge)
	r.Get("/ezpay/ready", eh.Ready)
	r.Post("/ezpay/reset", eh.Reset)

	r.Get("/addtask", th.Form)
	r.Post("/addtask", th.Create)
	r.Get("/tasks", th.ListJSON)
	r.Get("/taskspage", th.ListPage)
	r.Post("/tasks/{id}/delete", th.Delete)

	// --- Health endpoints ---
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		handlers.RenderError(w, http.StatusNotFound, nil, dev)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		handlers.RenderError(w, http.StatusMethodNotAllowed, nil, dev)
	})

	return r
}
