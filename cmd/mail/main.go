package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/mailer"
	"github.com/escala-acompanhantes/backend/internal/notify"
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
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		return
	}
	if err := cfg.ValidateMailer(); err != nil {
		logger.Error("configuração de e-mail incompleta", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * cliente SMTP
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("não foi possível criar o cliente de e-mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// fail fast on bad credentials
	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("não foi possível conectar ao servidor de e-mail", slog.String("error", err.Error()))
		return
	}

	renderer := mailer.NewRenderer(cfg.Email.TemplatesDir, cfg.Email.SMTP.Username)

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("não foi possível conectar ao RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("não foi possível abrir o canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Error("não foi possível declarar a fila", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker name the consumer
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("não foi possível consumir a fila", slog.String("error", err.Error()))
		return
	}

	ctx, stop := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Error("canal de mensagens fechado")
					stop()
					return
				}

				m, err := renderer.Build(msg.Body)
				if err != nil {
					logger.Error("mensagem descartada", slog.String("error", err.Error()), slog.String("body", string(msg.Body)))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("falha ao enviar e-mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue
					continue
				}

				logger.Info("e-mail enviado")
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("aguardando mensagens (CTRL+C para sair)", slog.String("queue", q.Name))
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Info("encerrando o mail worker")
	stop()
	wg.Wait()
	logger.Info("mail worker encerrado")
}
