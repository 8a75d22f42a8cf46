package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/usecase"
)

func makeContacts(n int) []entity.Contact {
	contacts := make([]entity.Contact, n)
	for i := range contacts {
		contacts[i] = entity.Contact{
			ContactID:           fmt.Sprintf("contact-%d", i),
			PrimaryEmailAddress: fmt.Sprintf("contato%d@example.com", i),
		}
	}
	return contacts
}

// TestSyncContactsBatching - 250 contatos viram lotes de 100, 100 e 50
func TestSyncContactsBatching(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	contactRepo := new(MockContactRepository)

	contacts := makeContacts(250)
	source.On("GetContacts", ctx, true).Return(contacts, nil)

	var batchSizes []int
	contactRepo.On("UpsertBatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
		batchSizes = append(batchSizes, len(args.Get(1).([]entity.Contact)))
	}).Return(nil)

	uc := usecase.NewSyncContactsUseCase(source, contactRepo)
	output, err := uc.Execute(ctx, true)

	assert.NoError(t, err)
	assert.Equal(t, 250, output.Count)
	assert.Equal(t, []int{100, 100, 50}, batchSizes)
}

// TestSyncContactsEmptySource - lista vazia é sucesso com zero, sem tocar no banco
func TestSyncContactsEmptySource(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	contactRepo := new(MockContactRepository)

	source.On("GetContacts", ctx, false).Return([]entity.Contact{}, nil)

	uc := usecase.NewSyncContactsUseCase(source, contactRepo)
	output, err := uc.Execute(ctx, false)

	assert.NoError(t, err)
	assert.Equal(t, 0, output.Count)
	contactRepo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}

// TestSyncContactsFetchFailure - origem indisponível vira erro de domínio
func TestSyncContactsFetchFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	contactRepo := new(MockContactRepository)

	source.On("GetContacts", ctx, true).Return(nil, errors.New("timeout"))

	uc := usecase.NewSyncContactsUseCase(source, contactRepo)
	output, err := uc.Execute(ctx, true)

	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	contactRepo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}

// TestSyncContactsBatchFailureAborts - lote que falha interrompe os seguintes
func TestSyncContactsBatchFailureAborts(t *testing.T) {
	ctx := context.Background()
	source := new(MockCoreforceSource)
	contactRepo := new(MockContactRepository)

	source.On("GetContacts", ctx, true).Return(makeContacts(250), nil)
	contactRepo.On("UpsertBatch", ctx, mock.Anything).Return(nil).Once()
	contactRepo.On("UpsertBatch", ctx, mock.Anything).Return(errors.New("deadlock detected")).Once()

	uc := usecase.NewSyncContactsUseCase(source, contactRepo)
	output, err := uc.Execute(ctx, true)

	assert.Nil(t, output)
	assert.True(t, usecase.IsTechnicalError(err))
	contactRepo.AssertNumberOfCalls(t, "UpsertBatch", 2)
}
