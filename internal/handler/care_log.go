package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (h *Handler) GetAllCareLogEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repository.GetAllCareLogEntries()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "registros obtidos", entries)
}

func (h *Handler) CreateCareLogEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string `json:"data" validate:"required,isodate"`
		Type        string `json:"tipo" validate:"required,oneof=intercorrencia dia_bom observacao"`
		Title       string `json:"titulo" validate:"required,max=200"`
		Description string `json:"descricao" validate:"max=5000"`
		Severity    string `json:"gravidade" validate:"omitempty,oneof=leve moderada grave"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entry := &domain.CareLogEntry{
		Date:        req.Date,
		Type:        domain.CareLogType(req.Type),
		Title:       req.Title,
		Description: req.Description,
	}
	// severity only means something for incidents
	if entry.Type == domain.CareLogIncident {
		entry.Severity = domain.Severity(req.Severity)
	}

	if err := h.repository.CreateCareLogEntry(entry); err != nil {
		h.storageError(w, r, err)
		return
	}

	if entry.Severity == domain.SeverityModerate || entry.Severity == domain.SeveritySevere {
		h.notifyIncident(entry)
	}

	h.createdResponse(w, r, "registro criado", entry)
}

// notifyIncident tells the family about a serious incident. The entry is already saved, so
// a failure is only logged.
func (h *Handler) notifyIncident(entry *domain.CareLogEntry) {
	if len(h.config.Email.FamilyRecipients) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err := h.publisher.Publish(ctx, domain.MailMessage{
		Type: domain.MailTypeIncidentRegistered,
		To:   h.config.Email.FamilyRecipients,
		Data: domain.IncidentMailData{
			Date:        entry.Date,
			Title:       entry.Title,
			Description: entry.Description,
			Severity:    string(entry.Severity),
		},
	})
	if err != nil {
		slog.Error("falha ao publicar notificação de intercorrência", slog.Int64("id", entry.ID), slog.String("error", err.Error()))
	}
}

func (h *Handler) GetCareLogEntry(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(CareLogEntryCtx).(*domain.CareLogEntry)

	h.successResponse(w, r, "registro obtido", entry)
}

func (h *Handler) DeleteCareLogEntry(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(CareLogEntryCtx).(*domain.CareLogEntry)

	if err := h.repository.DeleteCareLogEntry(entry.ID); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "registro removido", nil)
}
