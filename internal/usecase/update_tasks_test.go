package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/usecase"
)

// TestUpdateTasksReconciliation - remove quem saiu, cria quem chegou, mantém quem ficou
func TestUpdateTasksReconciliation(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	taskRepo := new(MockTaskRepository)
	stepRepo := new(MockStepRepository)
	cartRepo := new(MockCartRepository)

	carts := []entity.AbandonedCart{
		{ContactID: "contact-1", Items: []entity.CartItem{{ProductID: "sku-1", Quantity: 1}}},
		{ContactID: "contact-2", Items: []entity.CartItem{{ProductID: "sku-2", Quantity: 3}}},
	}
	stale := []entity.EmailTask{
		{ID: "task-old", ContactID: "contact-9"},
	}

	source.On("GetAbandonedCarts", ctx).Return(carts, nil)
	taskRepo.On("ListNotIn", ctx, []string{"contact-1", "contact-2"}).Return(stale, nil)
	stepRepo.On("Insert", ctx, mock.Anything).Return(nil)
	taskRepo.On("DeleteNotIn", ctx, []string{"contact-1", "contact-2"}).Return(nil)
	taskRepo.On("InsertIfAbsent", ctx, mock.Anything).Return(nil)
	cartRepo.On("ReplaceItems", ctx, "contact-1", carts[0].Items).Return(nil)
	cartRepo.On("ReplaceItems", ctx, "contact-2", carts[1].Items).Return(nil)

	uc := usecase.NewUpdateTasksUseCase(source, taskRepo, stepRepo, cartRepo)
	output, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"contact-1", "contact-2"}, output.CurrentTasks)
	assert.Equal(t, 1, output.Removed)

	taskRepo.AssertNumberOfCalls(t, "InsertIfAbsent", 2)
	cartRepo.AssertExpectations(t)

	// A auditoria da remoção não tem passo de sequência
	step := stepRepo.Calls[0].Arguments.Get(1).(*entity.EmailTaskStep)
	assert.Equal(t, "contact-9", step.ContactID)
	assert.Nil(t, step.Sequence)
	assert.True(t, step.Success)
	assert.Equal(t, "Removed from workflow", step.Message)
}

// TestUpdateTasksEmptyCartSet - nenhum carrinho abandonado apaga TODAS as tasks
func TestUpdateTasksEmptyCartSet(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	taskRepo := new(MockTaskRepository)
	stepRepo := new(MockStepRepository)
	cartRepo := new(MockCartRepository)

	stale := []entity.EmailTask{
		{ID: "task-1", ContactID: "contact-1"},
		{ID: "task-2", ContactID: "contact-2"},
	}

	source.On("GetAbandonedCarts", ctx).Return([]entity.AbandonedCart{}, nil)
	taskRepo.On("ListNotIn", ctx, []string{}).Return(stale, nil)
	stepRepo.On("Insert", ctx, mock.Anything).Return(nil)
	taskRepo.On("DeleteNotIn", ctx, []string{}).Return(nil)

	uc := usecase.NewUpdateTasksUseCase(source, taskRepo, stepRepo, cartRepo)
	output, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Empty(t, output.CurrentTasks)
	assert.Equal(t, 2, output.Removed)

	stepRepo.AssertNumberOfCalls(t, "Insert", 2)
	taskRepo.AssertCalled(t, "DeleteNotIn", ctx, []string{})
	taskRepo.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
}

// TestUpdateTasksFetchFailure - origem fora do ar: nada é escrito no banco
func TestUpdateTasksFetchFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	taskRepo := new(MockTaskRepository)
	stepRepo := new(MockStepRepository)
	cartRepo := new(MockCartRepository)

	source.On("GetAbandonedCarts", ctx).Return(nil, errors.New("502 bad gateway"))

	uc := usecase.NewUpdateTasksUseCase(source, taskRepo, stepRepo, cartRepo)
	output, err := uc.Execute(ctx)

	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))

	taskRepo.AssertNotCalled(t, "ListNotIn", mock.Anything, mock.Anything)
	taskRepo.AssertNotCalled(t, "DeleteNotIn", mock.Anything, mock.Anything)
	stepRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpdateTasksAuditBeforeDelete - se a auditoria falhar, a remoção não acontece
func TestUpdateTasksAuditBeforeDelete(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	taskRepo := new(MockTaskRepository)
	stepRepo := new(MockStepRepository)
	cartRepo := new(MockCartRepository)

	source.On("GetAbandonedCarts", ctx).Return([]entity.AbandonedCart{}, nil)
	taskRepo.On("ListNotIn", ctx, []string{}).Return([]entity.EmailTask{{ID: "task-1", ContactID: "contact-1"}}, nil)
	stepRepo.On("Insert", ctx, mock.Anything).Return(errors.New("disk full"))

	uc := usecase.NewUpdateTasksUseCase(source, taskRepo, stepRepo, cartRepo)
	output, err := uc.Execute(ctx)

	assert.Nil(t, output)
	assert.True(t, usecase.IsTechnicalError(err))
	taskRepo.AssertNotCalled(t, "DeleteNotIn", mock.Anything, mock.Anything)
}
