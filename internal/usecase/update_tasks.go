package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

const removedFromWorkflowMsg = "Removed from workflow"

// UpdateTasksUseCase reconcilia as tasks abertas com o conjunto atual de
// carrinhos abandonados: remove as que saíram (com auditoria) e cria as que
// faltam. Remoção sempre antes da criação, senão apagaríamos task recém-criada
// na mesma rodada.
type UpdateTasksUseCase struct {
	Source   CoreforceSource
	TaskRepo TaskRepositoryInterface
	StepRepo StepRepositoryInterface
	CartRepo entity.CartRepositoryInterface
}

func NewUpdateTasksUseCase(
	source CoreforceSource,
	taskRepo TaskRepositoryInterface,
	stepRepo StepRepositoryInterface,
	cartRepo entity.CartRepositoryInterface,
) *UpdateTasksUseCase {
	return &UpdateTasksUseCase{
		Source:   source,
		TaskRepo: taskRepo,
		StepRepo: stepRepo,
		CartRepo: cartRepo,
	}
}

func (uc *UpdateTasksUseCase) Execute(ctx context.Context) (*UpdateTasksOutput, error) {
	carts, err := uc.Source.GetAbandonedCarts(ctx)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeFetchFailed,
			Message: "falha ao buscar carrinhos abandonados: " + err.Error(),
		}
	}

	ids := make([]string, 0, len(carts))
	for _, cart := range carts {
		ids = append(ids, cart.ContactID)
	}

	// Fase 1: remoção.
	// Lista vazia = "nenhum carrinho abandonado", então TODAS as tasks abertas
	// saem do workflow (não é "sem filtro").
	stale, err := uc.TaskRepo.ListNotIn(ctx, ids)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to list stale tasks: " + err.Error(),
		}
	}

	for _, task := range stale {
		step := &entity.EmailTaskStep{
			ContactID: task.ContactID,
			Sequence:  nil,
			Success:   true,
			Message:   removedFromWorkflowMsg,
		}
		if err := uc.StepRepo.Insert(ctx, step); err != nil {
			return nil, &TechnicalError{
				Code:    CodeDatabaseError,
				Message: "failed to log task removal: " + err.Error(),
			}
		}
	}

	if err := uc.TaskRepo.DeleteNotIn(ctx, ids); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to delete stale tasks: " + err.Error(),
		}
	}

	if len(stale) > 0 {
		log.Printf("🧹 [TASKS] %d task(s) removida(s) do workflow", len(stale))
	}

	// Fase 2: criação idempotente + snapshot do carrinho
	for _, cart := range carts {
		if err := uc.TaskRepo.InsertIfAbsent(ctx, entity.NewEmailTask(cart.ContactID)); err != nil {
			return nil, &TechnicalError{
				Code:    CodeDatabaseError,
				Message: "failed to create task for contact " + cart.ContactID + ": " + err.Error(),
			}
		}
		if err := uc.CartRepo.ReplaceItems(ctx, cart.ContactID, cart.Items); err != nil {
			return nil, &TechnicalError{
				Code:    CodeDatabaseError,
				Message: "failed to refresh cart items for contact " + cart.ContactID + ": " + err.Error(),
			}
		}
	}

	return &UpdateTasksOutput{CurrentTasks: ids, Removed: len(stale)}, nil
}
