package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"crescer-uniformes/app/controller"
)

type Controllers struct {
	Import *controller.ImportController
	Order  *controller.OrderController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// statusRecorder keeps the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("🌐 request")
	})
}

// SetupRoutes builds the HTTP router. metricsHandler serves /metrics.
func SetupRoutes(controllers *Controllers, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	// Ping endpoint
	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	// Import routes
	imports := r.PathPrefix("/admin/imports").Subrouter()
	imports.HandleFunc("", controllers.Import.ImportText).Methods(http.MethodPost)
	imports.HandleFunc("/preview", controllers.Import.Preview).Methods(http.MethodPost)
	imports.HandleFunc("/drive/{fileId}", controllers.Import.ImportFromDrive).Methods(http.MethodPost)

	// Review queue
	imports.HandleFunc("/pending", controllers.Import.ListPending).Methods(http.MethodGet)
	imports.HandleFunc("/pending/export.xlsx", controllers.Import.ExportPendingXLSX).Methods(http.MethodGet)
	imports.HandleFunc("/pending/export.pdf", controllers.Import.ExportPendingPDF).Methods(http.MethodGet)
	imports.HandleFunc("/pending/sheet", controllers.Import.RenderPendingSheet).Methods(http.MethodGet)

	// Review actions on one imported order
	imports.HandleFunc("/{id}", controllers.Import.Update).Methods(http.MethodPut)
	imports.HandleFunc("/{id}/approve", controllers.Import.Approve).Methods(http.MethodPost)
	imports.HandleFunc("/{id}/ignore", controllers.Import.Ignore).Methods(http.MethodPost)

	// Order follow-up
	orders := r.PathPrefix("/admin/orders").Subrouter()
	orders.HandleFunc("/{id}", controllers.Order.GetOrder).Methods(http.MethodGet)
	orders.HandleFunc("/{id}", controllers.Order.UpdateOrder).Methods(http.MethodPut)
	orders.HandleFunc("/{id}/payments", controllers.Order.RegisterPayment).Methods(http.MethodPost)
	orders.HandleFunc("/{id}/deliveries", controllers.Order.UpdateDeliveries).Methods(http.MethodPut)

	return r
}
