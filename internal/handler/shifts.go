package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/utils"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	query := struct {
		StartDate string `json:"startDate" validate:"omitempty,isodate"`
		EndDate   string `json:"endDate" validate:"omitempty,isodate"`
		Date      string `json:"data" validate:"omitempty,isodate"`
	}{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
		Date:      r.URL.Query().Get("data"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if (query.StartDate == "") != (query.EndDate == "") {
		h.errorResponse(w, r, http.StatusBadRequest, "startDate e endDate devem ser informados juntos")
		return
	}

	var (
		shifts []domain.Shift
		err    error
	)
	switch {
	case query.StartDate != "":
		shifts, err = h.repository.GetShiftsBetween(query.StartDate, query.EndDate)
	case query.Date != "":
		shifts, err = h.repository.GetShiftsByDate(query.Date)
	default:
		shifts, err = h.repository.GetAllShifts()
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "turnos obtidos", shifts)
}

type shiftRequest struct {
	CaregiverID     int64  `json:"acompanhanteId" validate:"required,gt=0"`
	Date            string `json:"data" validate:"required,isodate"`
	Period          string `json:"periodo" validate:"required,periodo"`
	StartTime       string `json:"horaInicio" validate:"omitempty,clock"`
	EndTime         string `json:"horaFim" validate:"omitempty,clock"`
	Note            string `json:"observacao" validate:"max=2000"`
	AttentionPoints string `json:"pontosAtencao" validate:"max=2000"`
}

// apply copies the editable fields onto s; missing times come from the period catalog.
func (req *shiftRequest) apply(s *domain.Shift) {
	period, _ := domain.PeriodByID(req.Period)

	s.CaregiverID = req.CaregiverID
	s.Date = req.Date
	s.Period = req.Period
	s.StartTime = req.StartTime
	if s.StartTime == "" {
		s.StartTime = period.StartTime
	}
	s.EndTime = req.EndTime
	if s.EndTime == "" {
		s.EndTime = period.EndTime
	}
	s.Note = req.Note
	s.AttentionPoints = req.AttentionPoints
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{}
	req.apply(shift)

	if err := h.repository.CreateShift(shift); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.notifyShiftCreated(shift)

	h.createdResponse(w, r, "turno criado", shift)
}

// notifyShiftCreated tells the family who will be with the patient. The shift is already
// saved, so a failure is only logged.
func (h *Handler) notifyShiftCreated(shift *domain.Shift) {
	if len(h.config.Email.FamilyRecipients) == 0 {
		return
	}

	caregiver, err := h.repository.GetCaregiverByID(shift.CaregiverID)
	if err != nil {
		slog.Error("falha ao publicar notificação de turno", slog.Int64("id", shift.ID), slog.String("error", err.Error()))
		return
	}

	data := domain.ShiftCreatedMailData{
		ShiftID:         shift.ID,
		Date:            shift.Date,
		Period:          shift.Period,
		StartTime:       shift.StartTime,
		EndTime:         shift.EndTime,
		Note:            shift.Note,
		AttentionPoints: shift.AttentionPoints,
		CaregiverID:     caregiver.ID,
		CaregiverName:   caregiver.Name,
		CaregiverPhone:  caregiver.FormattedPhone(),
	}
	if p, ok := domain.PeriodByID(shift.Period); ok {
		data.Period = p.Name
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.publisher.Publish(ctx, domain.MailMessage{
		Type: domain.MailTypeShiftCreated,
		To:   h.config.Email.FamilyRecipients,
		Data: data,
	})
	if err != nil {
		slog.Error("falha ao publicar notificação de turno", slog.Int64("id", shift.ID), slog.String("error", err.Error()))
	}
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	h.successResponse(w, r, "turno obtido", shift)
}

// UpdateShift edits or reassigns a shift. Check-in and check-out data are kept.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req shiftRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.ModifyShift(shift.ID, func(s *domain.Shift) error {
		req.apply(s)
		return nil
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "turno atualizado", updated)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "turno removido", nil)
}

type attendanceRequest struct {
	Time string `json:"hora" validate:"omitempty,clock"`
}

// readAttendance returns the time of day sent by the client, or the current one.
func (h *Handler) readAttendance(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req attendanceRequest

	if err := h.readOptionalJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return "", false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return "", false
	}

	if req.Time == "" {
		return coverage.ClockOf(h.currentTime()).String(), true
	}
	return req.Time, true
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	at, ok := h.readAttendance(w, r)
	if !ok {
		return
	}
	now := h.currentTime()

	updated, err := h.repository.ModifyShift(shift.ID, func(s *domain.Shift) error {
		s.CheckinTime = at
		s.CheckinAt = &now
		return utils.ValidateShiftTimes(s)
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "check-in registrado", updated)
}

// CheckOut does not require a prior check-in; hours then count from the scheduled start.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	at, ok := h.readAttendance(w, r)
	if !ok {
		return
	}
	now := h.currentTime()

	updated, err := h.repository.ModifyShift(shift.ID, func(s *domain.Shift) error {
		s.CheckoutTime = at
		s.CheckoutAt = &now
		return utils.ValidateShiftTimes(s)
	})
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "check-out registrado", updated)
}
