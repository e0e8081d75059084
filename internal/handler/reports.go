package handler

import (
	"net/http"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "períodos obtidos", domain.Periods())
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.repository.ExportDocument()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary, err := coverage.Summarize(doc.Caregivers, doc.Shifts, doc.CareLogEntries)
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "relatório obtido", summary)
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repository.GetAllCareLogEntries()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tendência obtida", coverage.Trend30Days(entries, h.currentTime()))
}
