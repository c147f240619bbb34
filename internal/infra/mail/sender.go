package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, alertRecipient string) *EmailSender {
	return &EmailSender{
		Host:           host,
		Port:           port,
		User:           user,
		Password:       password,
		AlertRecipient: alertRecipient,
	}
}

// SendLeadAlert avisa al agente que entró un contacto nuevo por el sitio.
func (s *EmailSender) SendLeadAlert(payload queue.LeadCapturedPayload) error {
	data := leadAlertData{
		FullName:    payload.FullName,
		Email:       payload.Email,
		Phone:       payload.Phone,
		ProjectSlug: payload.ProjectSlug,
		CapturedAt:  payload.CapturedAt,
	}

	tmplPath := filepath.Join("templates", "lead_alert.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("error leyendo template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("error procesando template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-responder@dariovelez.com.do")
	m.SetHeader("To", s.AlertRecipient)
	m.SetHeader("Subject", fmt.Sprintf("🏠 Nuevo contacto: %s", payload.FullName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error enviando email SMTP: %w", err)
	}

	return nil
}
