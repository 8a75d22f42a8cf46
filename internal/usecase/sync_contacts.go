package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

// Lote por transação: importações grandes não seguram uma transação gigante,
// e um lote que falha não desfaz os anteriores.
const contactBatchSize = 100

type SyncContactsUseCase struct {
	Source      CoreforceSource
	ContactRepo entity.ContactRepositoryInterface
}

func NewSyncContactsUseCase(source CoreforceSource, contactRepo entity.ContactRepositoryInterface) *SyncContactsUseCase {
	return &SyncContactsUseCase{
		Source:      source,
		ContactRepo: contactRepo,
	}
}

// Execute sincroniza a lista de contatos do coreforce para o banco.
// O count retornado é o total de registros recebidos, não o de alterados.
func (uc *SyncContactsUseCase) Execute(ctx context.Context, checkAuth bool) (*SyncContactsOutput, error) {
	contacts, err := uc.Source.GetContacts(ctx, checkAuth)
	if err != nil {
		// Origem indisponível: aborta sem tocar no banco
		return nil, &DomainError{
			Code:    CodeFetchFailed,
			Message: "falha ao buscar contatos no coreforce: " + err.Error(),
		}
	}

	if len(contacts) == 0 {
		return &SyncContactsOutput{Count: 0}, nil
	}

	for start := 0; start < len(contacts); start += contactBatchSize {
		end := start + contactBatchSize
		if end > len(contacts) {
			end = len(contacts)
		}

		if err := uc.ContactRepo.UpsertBatch(ctx, contacts[start:end]); err != nil {
			// Lotes anteriores já commitaram; aborta o restante
			log.Printf("❌ [SYNC] Falha no lote %d-%d: %v", start, end, err)
			return nil, &TechnicalError{
				Code:    CodeDatabaseError,
				Message: fmt.Sprintf("failed to upsert contact batch %d-%d: %v", start, end, err),
			}
		}
	}

	log.Printf("✅ [SYNC] %d contato(s) sincronizado(s)", len(contacts))
	return &SyncContactsOutput{Count: len(contacts)}, nil
}
