package usecase

import (
	"time"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

type SyncContactsOutput struct {
	Count int `json:"count"`
}

type UpdateTasksOutput struct {
	CurrentTasks []string `json:"current_tasks"`
	Removed      int      `json:"removed"`
}

// TaskResult: resultado da avaliação de uma task numa rodada de processamento.
// SequenceDate e CurrentHour ficam no resultado para debug do agendamento.
type TaskResult struct {
	TaskID       string            `json:"id"`
	ContactID    string            `json:"contact_id"`
	Email        string            `json:"email,omitempty"`
	FirstName    string            `json:"first_name,omitempty"`
	LastName     string            `json:"last_name,omitempty"`
	Sequence     int               `json:"sequence"`
	Origination  time.Time         `json:"origination"`
	SequenceDate *time.Time        `json:"sequence_date,omitempty"`
	CurrentHour  int               `json:"current_hour"`
	Status       entity.TaskStatus `json:"status"`
	Message      string            `json:"message"`
}

type ProcessTasksOutput struct {
	Tasks []TaskResult `json:"tasks"`
}
