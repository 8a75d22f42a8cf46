package mail

import (
	"time"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

// CartDebug: bloco de diagnóstico embutido no HTML do email (mesmos campos
// que o webhook recebe, para rastrear envios em produção)
type CartDebug struct {
	Origination time.Time
	Sequence    string
	Email       string
	FirstName   string
	LastName    string
}

type CartEmailData struct {
	Items []entity.CartItem
	Debug CartDebug
}

// RunReportData: resumo de uma rodada de processamento para o operador
type RunReportData struct {
	When    time.Time
	Total   int
	Sent    int
	Failed  int
	Skipped int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
