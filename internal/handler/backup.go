package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/utils"
)

const backupVersion = "1.0"

type backupMeta struct {
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

type backupFile struct {
	*domain.Document
	Backup backupMeta `json:"_backup"`
}

// ExportBackup streams the whole document as a downloadable file, outside the usual envelope.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := h.repository.ExportDocument()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := h.now().UTC()
	body, err := json.MarshalIndent(backupFile{
		Document: doc,
		Backup:   backupMeta{ExportedAt: now, Version: backupVersion},
	}, "", "  ")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="escala-backup-%s.json"`, now.Format(domain.DateLayout)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type restoreStats struct {
	Caregivers     int `json:"acompanhantes"`
	Shifts         int `json:"turnos"`
	CareLogEntries int `json:"registrosAcompanhamento"`
}

func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	// pointers tell a missing collection apart from an empty one
	var req struct {
		Caregivers     *[]domain.Caregiver    `json:"acompanhantes"`
		Shifts         *[]domain.Shift        `json:"turnos"`
		CareLogEntries *[]domain.CareLogEntry `json:"registrosAcompanhamento"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Caregivers == nil || req.Shifts == nil {
		h.errorResponse(w, r, http.StatusBadRequest, "arquivo de backup inválido: deve conter acompanhantes e turnos")
		return
	}

	doc := domain.NewDocument()
	doc.Caregivers = *req.Caregivers
	doc.Shifts = *req.Shifts
	if req.CareLogEntries != nil {
		doc.CareLogEntries = *req.CareLogEntries
	}
	doc.EnsureCollections()

	if err := utils.ValidateDocument(doc); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "arquivo de backup inválido: "+err.Error())
		return
	}

	if err := h.repository.RestoreDocument(doc); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "dados restaurados", restoreStats{
		Caregivers:     len(doc.Caregivers),
		Shifts:         len(doc.Shifts),
		CareLogEntries: len(doc.CareLogEntries),
	})
}
