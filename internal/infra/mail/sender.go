package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

const runReportHTML = `<h3>Rodada de follow-up — {{.When.Format "02/01/2006 15:04"}} UTC</h3>
<ul>
  <li>Tasks avaliadas: {{.Total}}</li>
  <li>Enviados: {{.Sent}}</li>
  <li>Falhas: {{.Failed}}</li>
  <li>Pulados (fora de data/janela): {{.Skipped}}</li>
</ul>`

var runReportTmpl = template.Must(template.New("run_report").Parse(runReportHTML))

// SendRunReport manda o resumo da rodada por SMTP para o operador
func (s *EmailSender) SendRunReport(to string, report RunReportData) error {
	var body bytes.Buffer
	if err := runReportTmpl.Execute(&body, report); err != nil {
		return fmt.Errorf("erro ao processar template do relatório: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@cart-recovery.local")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Cart recovery: %d enviado(s), %d falha(s)", report.Sent, report.Failed))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
