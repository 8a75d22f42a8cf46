package usecase

import (
	"context"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/coreilla"
	"github.com/xavierca1/cart-recovery/internal/infra/mail"
	"github.com/xavierca1/cart-recovery/internal/infra/queue"
)

// CoreforceSource: origem externa de contatos e carrinhos abandonados.
// Somente leitura; erro aqui significa que NADA pode ser escrito no banco.
type CoreforceSource interface {
	GetContacts(ctx context.Context, checkAuth bool) ([]entity.Contact, error)
	GetAbandonedCarts(ctx context.Context) ([]entity.AbandonedCart, error)
}

type TaskRepositoryInterface interface {
	// ListOpen retorna as tasks abertas com contato e carrinho atuais
	ListOpen(ctx context.Context) ([]entity.TaskWithContact, error)
	// ListNotIn retorna tasks cujo contato NÃO está no conjunto.
	// Conjunto vazio retorna todas as tasks abertas.
	ListNotIn(ctx context.Context, contactIDs []string) ([]entity.EmailTask, error)
	// InsertIfAbsent cria a task; se o contato já tem uma, é no-op
	InsertIfAbsent(ctx context.Context, task *entity.EmailTask) error
	// DeleteNotIn apaga tasks fora do conjunto (vazio = apaga todas)
	DeleteNotIn(ctx context.Context, contactIDs []string) error
	UpdateSequence(ctx context.Context, taskID string, sequence int) error
	Delete(ctx context.Context, taskID string) error
}

type StepRepositoryInterface interface {
	Insert(ctx context.Context, step *entity.EmailTaskStep) error
}

// FollowUpSender: webhook coreilla que dispara o email de follow-up
type FollowUpSender interface {
	SendFollowUp(ctx context.Context, input coreilla.SendFollowUpInput) (*coreilla.FollowUpResponse, error)
}

// CartRenderer monta o HTML do corpo do email a partir do carrinho
type CartRenderer interface {
	RenderCart(data mail.CartEmailData) (string, error)
}

type QueueProducerInterface interface {
	PublishOutcome(ctx context.Context, payload queue.OutcomePayload) error
}

// ReportSender: email de resumo da rodada para o operador (melhor esforço)
type ReportSender interface {
	SendRunReport(to string, report mail.RunReportData) error
}
