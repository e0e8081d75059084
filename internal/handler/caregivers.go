package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (h *Handler) GetAllCaregivers(w http.ResponseWriter, r *http.Request) {
	caregivers, err := h.repository.GetAllCaregivers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "acompanhantes obtidos", caregivers)
}

func (h *Handler) CreateCaregiver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string              `json:"nome" validate:"required,max=100"`
		Phone        string              `json:"telefone" validate:"max=30"`
		Avatar       *string             `json:"avatar"`
		Color        string              `json:"cor" validate:"omitempty,hexcolor"`
		Availability domain.Availability `json:"disponibilidade"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	caregiver := &domain.Caregiver{
		Name:         req.Name,
		Phone:        req.Phone,
		Avatar:       req.Avatar,
		Color:        req.Color,
		Availability: req.Availability,
	}
	if caregiver.Avatar != nil && *caregiver.Avatar == "" {
		caregiver.Avatar = nil
	}
	if caregiver.Color == "" {
		caregiver.Color = h.randomColor()
	}

	if err := h.repository.CreateCaregiver(caregiver); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.createdResponse(w, r, "acompanhante criado", caregiver)
}

func (h *Handler) GetCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	h.successResponse(w, r, "acompanhante obtido", caregiver)
}

func (h *Handler) UpdateCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	var req struct {
		Name         *string             `json:"nome" validate:"omitnil,min=1,max=100"`
		Phone        *string             `json:"telefone" validate:"omitnil,max=30"`
		Avatar       *string             `json:"avatar"`
		Color        *string             `json:"cor" validate:"omitnil,hexcolor"`
		Availability domain.Availability `json:"disponibilidade"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.ModifyCaregiver(caregiver.ID, func(c *domain.Caregiver) error {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Phone != nil {
			c.Phone = *req.Phone
		}
		if req.Avatar != nil {
			// an empty string removes the photo
			if *req.Avatar == "" {
				c.Avatar = nil
			} else {
				c.Avatar = req.Avatar
			}
		}
		if req.Color != nil {
			c.Color = *req.Color
		}
		if req.Availability != nil {
			c.Availability = req.Availability
		}
		return nil
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "acompanhante atualizado", updated)
}

func (h *Handler) DeleteCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	if err := h.repository.DeleteCaregiver(caregiver.ID); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "acompanhante removido", nil)
}

func (h *Handler) ReplaceAvailability(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	var req struct {
		Availability domain.Availability `json:"disponibilidade" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.ModifyCaregiver(caregiver.ID, func(c *domain.Caregiver) error {
		c.Availability = req.Availability
		return nil
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "disponibilidade atualizada", updated)
}

func (h *Handler) ToggleAvailabilityDay(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	day := chi.URLParam(r, "dia")
	if !domain.IsValidWeekday(day) {
		h.errorResponse(w, r, http.StatusBadRequest, "dia da semana inválido")
		return
	}

	updated, err := h.repository.ModifyCaregiver(caregiver.ID, func(c *domain.Caregiver) error {
		if c.Availability == nil {
			c.Availability = domain.NewAvailability()
		}
		c.Availability.ToggleDay(domain.Weekday(day))
		return nil
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "disponibilidade atualizada", updated)
}

func (h *Handler) ToggleAvailabilityPeriod(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	day := chi.URLParam(r, "dia")
	if !domain.IsValidWeekday(day) {
		h.errorResponse(w, r, http.StatusBadRequest, "dia da semana inválido")
		return
	}
	period := chi.URLParam(r, "periodo")
	if !domain.IsValidPeriod(period) {
		h.errorResponse(w, r, http.StatusBadRequest, "período inválido")
		return
	}

	updated, err := h.repository.ModifyCaregiver(caregiver.ID, func(c *domain.Caregiver) error {
		if c.Availability == nil {
			c.Availability = domain.NewAvailability()
		}
		c.Availability.TogglePeriod(domain.Weekday(day), period)
		return nil
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "disponibilidade atualizada", updated)
}

func (h *Handler) GetCaregiverTotals(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	shifts, err := h.repository.GetShiftsByCaregiver(caregiver.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	totals, err := coverage.TotalHoursFor(caregiver.ID, shifts)
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "totais obtidos", totals)
}

func (h *Handler) GetCaregiverShifts(w http.ResponseWriter, r *http.Request) {
	caregiver := r.Context().Value(CaregiverCtx).(*domain.Caregiver)

	shifts, err := h.repository.GetShiftsByCaregiver(caregiver.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "turnos obtidos", shifts)
}
