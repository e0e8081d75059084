package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/repository"
	"github.com/escala-acompanhantes/backend/internal/seed"
)

func main() {
	var op int
	var n int
	var weeks int
	var days int
	var randomSeed int64

	flag.IntVar(&op, "op", 0, "operação (1: acompanhantes aleatórios, 2: turnos das próximas semanas, 3: registros de acompanhamento, 4: todas)")
	flag.IntVar(&n, "n", 5, "quantidade de acompanhantes")
	flag.IntVar(&weeks, "weeks", 2, "semanas de turnos a partir da semana atual")
	flag.IntVar(&days, "days", 30, "dias de histórico de acompanhamento")
	flag.Int64Var(&randomSeed, "seed", time.Now().UnixNano(), "semente aleatória")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, closeStore, err := repository.OpenStore(cfg)
	if err != nil {
		logger.Error("não foi possível abrir o armazenamento", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	locker, closeLocker, err := repository.OpenLocker(cfg)
	if err != nil {
		logger.Error("não foi possível configurar o lock do documento", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLocker()

	repo := repository.NewRepository(cfg, store, locker)
	s := seed.New(repo, randomSeed, cfg.Location())
	now := time.Now()

	seedCaregivers := func() {
		if n <= 0 {
			logger.Error("número de acompanhantes inválido", slog.Int("n", n))
			return
		}
		logger.Info("acompanhantes inseridos", slog.Int("count", s.Caregivers(n)))
	}
	seedShifts := func() {
		if weeks <= 0 {
			logger.Error("número de semanas inválido", slog.Int("weeks", weeks))
			return
		}
		cnt, err := s.Shifts(weeks, now)
		if err != nil {
			logger.Error("falha ao inserir turnos", slog.String("error", err.Error()))
			return
		}
		logger.Info("turnos inseridos", slog.Int("count", cnt))
	}
	seedCareLog := func() {
		if days <= 0 {
			logger.Error("número de dias inválido", slog.Int("days", days))
			return
		}
		logger.Info("registros de acompanhamento inseridos", slog.Int("count", s.CareLog(days, now)))
	}

	switch op {
	case 0:
		logger.Error("nenhuma operação informada")
	case 1:
		seedCaregivers()
	case 2:
		seedShifts()
	case 3:
		seedCareLog()
	case 4:
		seedCaregivers()
		seedShifts()
		seedCareLog()
	default:
		logger.Error("operação inválida", slog.Int("op", op))
	}
}
