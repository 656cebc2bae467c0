package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/figofit/itfit-mvp-lite/internal/api/recovery"
	"github.com/figofit/itfit-mvp-lite/internal/store"
)

// NewRouter wires every HTTP route onto st. isHealthy backs /api/health.
func NewRouter(st *store.Store, isHealthy func() bool, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware(log))
	router.Use(accessLog(log))

	healthHandler := NewHealthHandler(isHealthy, st.Available())
	docHandler := NewDocumentHandler(st)
	queryHandler := NewQueryHandler(st)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Document
	router.HandleFunc("/api/document", docHandler.GetDocument).Methods("GET")
	router.HandleFunc("/api/document", docHandler.ResetAll).Methods("DELETE")
	router.HandleFunc("/api/settings", docHandler.UpdateSettings).Methods("PUT")

	// Logs
	router.HandleFunc("/api/daily-logs/{date}", docHandler.PatchDailyLog).Methods("PATCH")
	router.HandleFunc("/api/daily-logs", docHandler.ResetDailyLogs).Methods("DELETE")
	router.HandleFunc("/api/workout-logs", docHandler.AppendWorkoutLog).Methods("POST")
	router.HandleFunc("/api/workout-logs", docHandler.ResetWorkoutLogs).Methods("DELETE")

	// Backup
	router.HandleFunc("/api/export", docHandler.Export).Methods("GET")
	router.HandleFunc("/api/export/daily.csv", docHandler.ExportDailyCSV).Methods("GET")
	router.HandleFunc("/api/export/workouts.csv", docHandler.ExportWorkoutCSV).Methods("GET")
	router.HandleFunc("/api/export/itfit.xlsx", docHandler.ExportWorkbook).Methods("GET")
	router.HandleFunc("/api/import", docHandler.Import).Methods("POST")

	// Derived queries
	router.HandleFunc("/api/dashboard", queryHandler.Dashboard).Methods("GET")
	router.HandleFunc("/api/workouts/last/{template}", queryHandler.LastWorkout).Methods("GET")

	return router
}
