package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("email task não encontrada")

// TaskStatus é o resultado fechado da avaliação de uma task num passo.
// "sent" também marca o fechamento terminal da sequência (sem envio real).
type TaskStatus string

const (
	StatusSent    TaskStatus = "sent"
	StatusSkipped TaskStatus = "skipped"
	StatusFailed  TaskStatus = "failed"
)

// Entidade: EmailTask
// No máximo uma task aberta por contato. Sequence é o último passo enviado
// com sucesso; nil = nenhum email saiu ainda.
type EmailTask struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contact_id"`
	Sequence    *int      `json:"sequence"`
	Origination time.Time `json:"origination"`
}

// Factory
func NewEmailTask(contactID string) *EmailTask {
	return &EmailTask{
		ID:          uuid.New().String(),
		ContactID:   contactID,
		Sequence:    nil,
		Origination: time.Now().UTC(),
	}
}

// NextSequence: (sequence ?? -1) + 1
func (t *EmailTask) NextSequence() int {
	if t.Sequence == nil {
		return 0
	}
	return *t.Sequence + 1
}

// EmailTaskStep: trilha de auditoria append-only. Nunca é alterada nem
// apagada. Sequence nil identifica eventos de remoção do workflow.
type EmailTaskStep struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Sequence  *int      `json:"sequence"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskWithContact: task aberta junto com o estado atual do contato e do
// carrinho, como o processador consome.
type TaskWithContact struct {
	EmailTask
	Contact Contact    `json:"contact"`
	Items   []CartItem `json:"items"`
}
