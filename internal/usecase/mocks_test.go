package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/coreilla"
	"github.com/xavierca1/cart-recovery/internal/infra/mail"
	"github.com/xavierca1/cart-recovery/internal/infra/queue"
)

// MockCoreforceSource
type MockCoreforceSource struct {
	mock.Mock
}

func (m *MockCoreforceSource) GetContacts(ctx context.Context, checkAuth bool) ([]entity.Contact, error) {
	args := m.Called(ctx, checkAuth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockCoreforceSource) GetAbandonedCarts(ctx context.Context) ([]entity.AbandonedCart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AbandonedCart), args.Error(1)
}

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) UpsertBatch(ctx context.Context, contacts []entity.Contact) error {
	args := m.Called(ctx, contacts)
	return args.Error(0)
}

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListOpen(ctx context.Context) ([]entity.TaskWithContact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TaskWithContact), args.Error(1)
}

func (m *MockTaskRepository) ListNotIn(ctx context.Context, contactIDs []string) ([]entity.EmailTask, error) {
	args := m.Called(ctx, contactIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EmailTask), args.Error(1)
}

func (m *MockTaskRepository) InsertIfAbsent(ctx context.Context, task *entity.EmailTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteNotIn(ctx context.Context, contactIDs []string) error {
	args := m.Called(ctx, contactIDs)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateSequence(ctx context.Context, taskID string, sequence int) error {
	args := m.Called(ctx, taskID, sequence)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockStepRepository
type MockStepRepository struct {
	mock.Mock
}

func (m *MockStepRepository) Insert(ctx context.Context, step *entity.EmailTaskStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

// MockCartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ReplaceItems(ctx context.Context, contactID string, items []entity.CartItem) error {
	args := m.Called(ctx, contactID, items)
	return args.Error(0)
}

// MockFollowUpSender
type MockFollowUpSender struct {
	mock.Mock
}

func (m *MockFollowUpSender) SendFollowUp(ctx context.Context, input coreilla.SendFollowUpInput) (*coreilla.FollowUpResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coreilla.FollowUpResponse), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishOutcome(ctx context.Context, payload queue.OutcomePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockReportSender
type MockReportSender struct {
	mock.Mock
}

func (m *MockReportSender) SendRunReport(to string, report mail.RunReportData) error {
	args := m.Called(to, report)
	return args.Error(0)
}
