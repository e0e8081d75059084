package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/handler"
	"github.com/escala-acompanhantes/backend/internal/notify"
	"github.com/escala-acompanhantes/backend/internal/repository"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuração
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", "error", err)
		os.Exit(1)
	}

	/**********************************************
	 * armazenamento
	 **********************************************/
	store, closeStore, err := repository.OpenStore(cfg)
	if err != nil {
		logger.Error("não foi possível abrir o armazenamento", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	/**********************************************
	 * lock do documento
	 **********************************************/
	locker, closeLocker, err := repository.OpenLocker(cfg)
	if err != nil {
		logger.Error("não foi possível configurar o lock do documento", "backend", cfg.Lock.Backend, "error", err)
		os.Exit(1)
	}
	defer closeLocker()

	repo := repository.NewRepository(cfg, store, locker)

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("não foi possível conectar ao RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Error("não foi possível abrir o canal", "error", err)
			os.Exit(1)
		}
		defer ch.Close()

		p, err := notify.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue)
		if err != nil {
			logger.Error("não foi possível declarar a fila", "error", err)
			os.Exit(1)
		}
		publisher = p
	} else {
		logger.Info("RabbitMQ desativado, notificações à família serão descartadas")
	}

	/**********************************************
	 * handler
	 **********************************************/
	h, err := handler.NewHandler(cfg, repo, publisher)
	if err != nil {
		logger.Error("não foi possível criar o handler", "error", err)
		os.Exit(1)
	}
	h.RegisterRoutes()

	/**********************************************
	 * servidor HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("iniciando o servidor", "port", cfg.Server.Port, "storage", cfg.Storage.Backend, "lock", cfg.Lock.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("servidor interrompido", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("encerrando o servidor")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("falha ao encerrar o servidor", slog.String("error", err.Error()))
	}
	logger.Info("servidor encerrado")
}
