package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/xavierca1/cart-recovery/internal/entity"
)

type TaskStepRepository struct {
	DB *sql.DB
}

func NewTaskStepRepository(db *sql.DB) *TaskStepRepository {
	return &TaskStepRepository{DB: db}
}

// Insert grava um registro de auditoria. A tabela é append-only: não existe
// UPDATE nem DELETE aqui de propósito.
func (r *TaskStepRepository) Insert(ctx context.Context, step *entity.EmailTaskStep) error {
	id := step.ID
	if id == "" {
		id = uuid.New().String()
	}

	query := `
		INSERT INTO email_task_steps (id, contact_id, sequence, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.DB.ExecContext(ctx, query,
		id,
		step.ContactID,
		step.Sequence, // *int: nil vira NULL (eventos de remoção)
		step.Success,
		step.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task step: %w", err)
	}
	return nil
}
