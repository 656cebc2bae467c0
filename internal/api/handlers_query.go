package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/figofit/itfit-mvp-lite/internal/api/respond"
	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/query"
	"github.com/figofit/itfit-mvp-lite/internal/store"
)

// QueryHandler serves derived read-only views of the document.
type QueryHandler struct {
	st *store.Store
}

func NewQueryHandler(st *store.Store) *QueryHandler { return &QueryHandler{st: st} }

// Dashboard GET /api/dashboard
func (h *QueryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	doc := h.st.Read(r.Context())
	respond.WriteJSON(w, http.StatusOK, query.BuildDashboard(doc, h.st.Now()))
}

// LastWorkout GET /api/workouts/last/{template}[?exercise=key]
// With an exercise key only that exercise of the last session is returned.
func (h *QueryHandler) LastWorkout(w http.ResponseWriter, r *http.Request) {
	tpl := model.Template(mux.Vars(r)["template"])
	logs := h.st.Read(r.Context()).WorkoutLogs

	if key := r.URL.Query().Get("exercise"); key != "" {
		ex, ok := query.LastExercise(logs, tpl, key)
		if !ok {
			respond.WriteErr(w, model.NewNotFoundError("exercise", key))
			return
		}
		respond.WriteJSON(w, http.StatusOK, ex)
		return
	}

	wl, ok := query.LastWorkoutLog(logs, tpl)
	if !ok {
		respond.WriteErr(w, model.NewNotFoundError("template", string(tpl)))
		return
	}
	respond.WriteJSON(w, http.StatusOK, wl)
}
