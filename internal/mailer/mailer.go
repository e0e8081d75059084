// Package mailer turns queued notifications into e-mails for the family.
package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// ErrUnsupportedType is returned for messages no template exists for. Such messages are never retried.
var ErrUnsupportedType = errors.New("tipo de e-mail não suportado")

type kind struct {
	template string
	subject  string
	data     func() any
}

var kinds = map[string]kind{
	domain.MailTypeIncidentRegistered: {
		template: "incident_email.html",
		subject:  "Escala de Acompanhantes - Nova intercorrência registrada",
		data:     func() any { return &domain.IncidentMailData{} },
	},
	domain.MailTypeCoverageDigest: {
		template: "coverage_digest_email.html",
		subject:  "Escala de Acompanhantes - Períodos sem acompanhante",
		data:     func() any { return &domain.CoverageDigestMailData{} },
	},
	domain.MailTypeShiftCreated: {
		template: "shift_created_email.html",
		subject:  "Escala de Acompanhantes - Novo turno agendado",
		data:     func() any { return &domain.ShiftCreatedMailData{} },
	},
}

var funcs = template.FuncMap{
	"severity": func(s string) string {
		switch domain.Severity(s) {
		case domain.SeverityMild:
			return "Leve"
		case domain.SeverityModerate:
			return "Moderada"
		case domain.SeveritySevere:
			return "Grave"
		default:
			return s
		}
	},
}

type Renderer struct {
	dir  string
	from string
}

func NewRenderer(templatesDir, from string) *Renderer {
	return &Renderer{dir: templatesDir, from: from}
}

type queued struct {
	Type string          `json:"type"`
	To   []string        `json:"to"`
	Data json.RawMessage `json:"data"`
}

// Build decodes a queued message body and renders it into a ready-to-send e-mail.
func (r *Renderer) Build(body []byte) (*mail.Msg, error) {
	var q queued
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, err
	}

	k, ok := kinds[q.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, q.Type)
	}
	if len(q.To) == 0 {
		return nil, errors.New("mensagem sem destinatários")
	}

	data := k.data()
	if err := json.Unmarshal(q.Data, data); err != nil {
		return nil, err
	}

	tmpl, err := template.New(k.template).Funcs(funcs).ParseFiles(filepath.Join(r.dir, k.template))
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(r.from); err != nil {
		return nil, err
	}
	if err := m.To(q.To...); err != nil {
		return nil, err
	}
	m.Subject(k.subject)
	if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
		return nil, err
	}

	return m, nil
}
