package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/scheduler"
)

// weekOf parses the optional semana value; any date of the week selects the whole week.
func (h *Handler) weekOf(semana string) (time.Time, error) {
	if semana == "" {
		return h.currentTime(), nil
	}
	return time.ParseInLocation(domain.DateLayout, semana, h.location)
}

// weekShifts loads the shifts of the Monday-start week containing day.
func (h *Handler) weekShifts(day time.Time) ([]domain.Shift, error) {
	monday, sunday := coverage.WeekBounds(day)
	return h.repository.GetShiftsBetween(monday.Format(domain.DateLayout), sunday.Format(domain.DateLayout))
}

func (h *Handler) GetWeekCoverage(w http.ResponseWriter, r *http.Request) {
	query := struct {
		Week string `json:"semana" validate:"omitempty,isodate"`
	}{
		Week: r.URL.Query().Get("semana"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := h.weekOf(query.Week)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.weekShifts(day)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report, err := coverage.WeekCoverage(day, shifts, h.currentTime())
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.successResponse(w, r, "cobertura obtida", report)
}

type suggestionResult struct {
	WeekStart   string         `json:"semanaInicio"`
	WeekEnd     string         `json:"semanaFim"`
	TotalGaps   int            `json:"totalGaps"`
	Covered     int            `json:"cobertos"`
	Applied     bool           `json:"aplicado"`
	Suggestions []domain.Shift `json:"sugestoes"`
}

func (h *Handler) SuggestCoverage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Week       string `json:"semana" validate:"omitempty,isodate"`
		Apply      bool   `json:"aplicar"`
		Seed       *int64 `json:"semente"`
		Parameters *struct {
			PopulationSize *int32   `json:"tamanhoPopulacao" validate:"omitnil,min=2,max=1000"`
			MaxGenerations *int32   `json:"geracoes" validate:"omitnil,min=1,max=5000"`
			CrossoverRate  *float64 `json:"taxaCruzamento" validate:"omitnil,min=0,max=1"`
			MutationRate   *float64 `json:"taxaMutacao" validate:"omitnil,min=0,max=1"`
			EliteCount     *int32   `json:"elite" validate:"omitnil,min=0"`
			FairnessWeight *float64 `json:"pesoEquidade" validate:"omitnil,min=0"`
		} `json:"parametros"`
	}

	if err := h.readOptionalJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	params := &scheduler.Parameters{
		PopulationSize: h.config.Scheduler.PopulationSize,
		MaxGenerations: h.config.Scheduler.MaxGenerations,
		CrossoverRate:  h.config.Scheduler.CrossoverRate,
		MutationRate:   h.config.Scheduler.MutationRate,
		EliteCount:     h.config.Scheduler.EliteCount,
		FairnessWeight: h.config.Scheduler.FairnessWeight,
	}
	if p := req.Parameters; p != nil {
		if p.PopulationSize != nil {
			params.PopulationSize = *p.PopulationSize
		}
		if p.MaxGenerations != nil {
			params.MaxGenerations = *p.MaxGenerations
		}
		if p.CrossoverRate != nil {
			params.CrossoverRate = *p.CrossoverRate
		}
		if p.MutationRate != nil {
			params.MutationRate = *p.MutationRate
		}
		if p.EliteCount != nil {
			params.EliteCount = *p.EliteCount
		}
		if p.FairnessWeight != nil {
			params.FairnessWeight = *p.FairnessWeight
		}
	}

	seed := h.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	day, err := h.weekOf(req.Week)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	caregivers, err := h.repository.GetAllCaregivers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	shifts, err := h.weekShifts(day)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report, err := coverage.WeekCoverage(day, shifts, h.currentTime())
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	s, err := scheduler.New(params, caregivers, report.Gaps, shifts, seed)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidParameters):
			h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			h.storageError(w, r, err)
		}
		return
	}

	suggestions, err := s.Schedule()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := suggestionResult{
		WeekStart:   report.WeekStart,
		WeekEnd:     report.WeekEnd,
		TotalGaps:   report.TotalGaps,
		Covered:     len(suggestions),
		Suggestions: suggestions,
	}

	if req.Apply && len(suggestions) > 0 {
		batch := make([]*domain.Shift, len(suggestions))
		for i := range suggestions {
			batch[i] = &suggestions[i]
		}
		if err := h.repository.CreateShifts(batch); err != nil {
			h.storageError(w, r, err)
			return
		}
		result.Applied = true

		h.createdResponse(w, r, "sugestões aplicadas", result)
		return
	}

	h.successResponse(w, r, "sugestões geradas", result)
}

func (h *Handler) NotifyCoverage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Week string `json:"semana" validate:"omitempty,isodate"`
	}

	if err := h.readOptionalJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if len(h.config.Email.FamilyRecipients) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "nenhum destinatário configurado")
		return
	}

	day, err := h.weekOf(req.Week)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.weekShifts(day)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report, err := coverage.WeekCoverage(day, shifts, h.currentTime())
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	digest := domain.CoverageDigestMailData{
		WeekStart: report.WeekStart,
		WeekEnd:   report.WeekEnd,
		TotalGaps: report.TotalGaps,
		Days:      make([]domain.CoverageDigestDay, 0, len(report.Gaps)),
	}
	for date, gaps := range report.Gaps {
		digest.Days = append(digest.Days, domain.CoverageDigestDay{Date: date, Gaps: gaps})
	}
	sort.Slice(digest.Days, func(i, j int) bool {
		return digest.Days[i].Date < digest.Days[j].Date
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.publisher.Publish(ctx, domain.MailMessage{
		Type: domain.MailTypeCoverageDigest,
		To:   h.config.Email.FamilyRecipients,
		Data: digest,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "resumo de cobertura enviado", digest)
}
