package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/figofit/itfit-mvp-lite/internal/api/respond"
	"github.com/figofit/itfit-mvp-lite/internal/datekey"
	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/store"
)

const (
	// maxImportBytes caps uploaded snapshots.
	maxImportBytes  = 8 << 20
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DocumentHandler is a thin HTTP transport over the document store.
type DocumentHandler struct {
	st *store.Store
}

func NewDocumentHandler(st *store.Store) *DocumentHandler { return &DocumentHandler{st: st} }

// GetDocument GET /api/document
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.st.Read(r.Context()))
}

// ResetAll DELETE /api/document
func (h *DocumentHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, http.StatusOK)(h.st.ResetAll(r.Context()))
}

// UpdateSettings PUT /api/settings
func (h *DocumentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	h.writeResult(w, http.StatusOK)(h.st.UpdateSettings(r.Context(), patch))
}

// PatchDailyLog PATCH /api/daily-logs/{date}
func (h *DocumentHandler) PatchDailyLog(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if date == "today" {
		date = datekey.Today(h.st.Now)
	}
	var patch model.DailyLogPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	h.writeResult(w, http.StatusOK)(h.st.UpdateDailyLog(r.Context(), date, patch))
}

// ResetDailyLogs DELETE /api/daily-logs
func (h *DocumentHandler) ResetDailyLogs(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, http.StatusOK)(h.st.ResetDailyLogs(r.Context()))
}

// AppendWorkoutLog POST /api/workout-logs
func (h *DocumentHandler) AppendWorkoutLog(w http.ResponseWriter, r *http.Request) {
	var wl model.WorkoutLog
	if err := json.NewDecoder(r.Body).Decode(&wl); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	h.writeResult(w, http.StatusCreated)(h.st.AppendWorkoutLog(r.Context(), wl))
}

// ResetWorkoutLogs DELETE /api/workout-logs
func (h *DocumentHandler) ResetWorkoutLogs(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, http.StatusOK)(h.st.ResetWorkoutLogs(r.Context()))
}

// Export GET /api/export
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, err := h.st.Export(r.Context())
	if err != nil {
		respond.WriteErr(w, err)
		return
	}
	respond.WriteAttachment(w, "application/json", "itfit-backup-"+datekey.Today(h.st.Now)+".json", body)
}

// ExportDailyCSV GET /api/export/daily.csv
func (h *DocumentHandler) ExportDailyCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itfit-daily.csv"`)
	if err := h.st.ExportDailyCSV(r.Context(), w); err != nil {
		respond.WriteErr(w, err)
	}
}

// ExportWorkoutCSV GET /api/export/workouts.csv
func (h *DocumentHandler) ExportWorkoutCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itfit-workouts.csv"`)
	if err := h.st.ExportWorkoutCSV(r.Context(), w); err != nil {
		respond.WriteErr(w, err)
	}
}

// ExportWorkbook GET /api/export/itfit.xlsx
func (h *DocumentHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.st.ExportWorkbook(r.Context(), &buf); err != nil {
		respond.WriteErr(w, err)
		return
	}
	respond.WriteAttachment(w, xlsxContentType, "itfit-"+datekey.Today(h.st.Now)+".xlsx", buf.Bytes())
}

// Import POST /api/import
func (h *DocumentHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		respond.WriteBadRequest(w, "snapshot too large or unreadable")
		return
	}
	doc, err := h.st.Import(r.Context(), payload)
	if err != nil {
		respond.WriteErr(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) writeResult(w http.ResponseWriter, status int) func(model.Document, error) {
	return func(doc model.Document, err error) {
		if err != nil {
			respond.WriteErr(w, err)
			return
		}
		respond.WriteJSON(w, status, doc)
	}
}
