package handler

import (
	"math/rand"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	"golang.org/x/crypto/bcrypt"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/coverage"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/notify"
	"github.com/escala-acompanhantes/backend/internal/repository"
	"github.com/escala-acompanhantes/backend/internal/utils"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	publisher    notify.Publisher
	location     *time.Location
	passwordHash []byte
	now          func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, publisher notify.Publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// messages name fields the way clients send them
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pt_BR_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerValidations(validate, trans); err != nil {
		return nil, err
	}

	var passwordHash []byte
	if cfg.Auth.Password != "" {
		if strings.HasPrefix(cfg.Auth.Password, "$2") {
			passwordHash = []byte(cfg.Auth.Password)
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			passwordHash = hash
		}
	}

	if publisher == nil {
		publisher = notify.NopPublisher{}
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		publisher:    publisher,
		location:     cfg.Location(),
		passwordHash: passwordHash,
		now:          time.Now,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),

		Mux: chi.NewRouter(),
	}, nil
}

func registerValidations(validate *validator.Validate, trans ut.Translator) error {
	validations := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "clock",
			fn: func(fl validator.FieldLevel) bool {
				_, err := coverage.ParseClock(fl.Field().String())
				return err == nil
			},
			message: "{0} deve estar no formato HH:MM",
		},
		{
			tag: "isodate",
			fn: func(fl validator.FieldLevel) bool {
				_, err := time.Parse(domain.DateLayout, fl.Field().String())
				return err == nil
			},
			message: "{0} deve ser uma data no formato AAAA-MM-DD",
		},
		{
			tag: "periodo",
			fn: func(fl validator.FieldLevel) bool {
				return domain.IsValidPeriod(fl.Field().String())
			},
			message: "{0} deve ser um dos períodos: manha, tarde, noite, madrugada",
		},
		{
			tag: "weekday",
			fn: func(fl validator.FieldLevel) bool {
				return domain.IsValidWeekday(fl.Field().String())
			},
			message: "{0} deve ser um dia da semana válido",
		},
	}

	for _, v := range validations {
		if err := validate.RegisterValidation(v.tag, v.fn); err != nil {
			return err
		}

		tag, message := v.tag, v.message
		err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) currentTime() time.Time {
	return h.now().In(h.location)
}

func (h *Handler) randomColor() string {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return utils.RandomColor(h.rng)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// avatars are referenced from <img> tags, so they stay public
	h.Mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.config.Upload.Dir))))

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/periodos", h.GetPeriods)

		r.Route("/acompanhantes", func(r chi.Router) {
			r.Get("/", h.GetAllCaregivers)
			r.Post("/", h.CreateCaregiver)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.caregiver)
				r.Get("/", h.GetCaregiver)
				r.Patch("/", h.UpdateCaregiver)
				r.Delete("/", h.DeleteCaregiver)
				r.Put("/disponibilidade", h.ReplaceAvailability)
				r.Post("/disponibilidade/{dia}/alternar", h.ToggleAvailabilityDay)
				r.Post("/disponibilidade/{dia}/{periodo}/alternar", h.ToggleAvailabilityPeriod)
				r.Get("/totais", h.GetCaregiverTotals)
				r.Get("/turnos", h.GetCaregiverShifts)
			})
		})

		r.Route("/turnos", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.Get("/", h.GetShift)
				r.Put("/", h.UpdateShift)
				r.Delete("/", h.DeleteShift)
				r.Post("/checkin", h.CheckIn)
				r.Post("/checkout", h.CheckOut)
			})
		})

		r.Route("/cobertura", func(r chi.Router) {
			r.Get("/", h.GetWeekCoverage)
			r.Post("/sugestoes", h.SuggestCoverage)
			r.Post("/notificar", h.NotifyCoverage)
		})

		r.Get("/relatorio", h.GetReport)

		r.Route("/acompanhamento", func(r chi.Router) {
			r.Get("/", h.GetAllCareLogEntries)
			r.Post("/", h.CreateCareLogEntry)
			r.Get("/tendencia", h.GetTrend)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.careLogEntry)
				r.Get("/", h.GetCareLogEntry)
				r.Delete("/", h.DeleteCareLogEntry)
			})
		})

		r.Get("/backup", h.ExportBackup)
		r.Post("/backup", h.RestoreBackup)

		r.Post("/upload", h.UploadAvatar)
	})
}
