package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"rag-assessment/internal/app"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/logger"
	"rag-assessment/internal/report"
)

// ReportHandler serves GET /sessions/{id}/report?format=pdf|text|png.
type ReportHandler struct {
	service *app.AssessmentService
	log     *logger.Logger
}

func NewReportHandler(service *app.AssessmentService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log.With("component", "report-http")}
}

func (h *ReportHandler) ServeReport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.service.Report(r.Context(), sessionID, format)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	if _, err := w.Write(doc.Body); err != nil {
		h.log.Debug("report write failed", "session", sessionID, "error", err)
	}
}

func statusFor(err error) int {
	var genErr *domain.ReportGenerationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncompleteQuiz):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &genErr):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// NewMux wires the assessment routes onto a ServeMux.
func NewMux(ws *WSHandler, reports *ReportHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	mux.HandleFunc("GET /sessions/{id}/report", reports.ServeReport)
	return mux
}
