package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/cart-recovery/internal/usecase"
)

type syncExecutor interface {
	Execute(ctx context.Context, checkAuth bool) (*usecase.SyncContactsOutput, error)
}

type updateExecutor interface {
	Execute(ctx context.Context) (*usecase.UpdateTasksOutput, error)
}

type processExecutor interface {
	Execute(ctx context.Context) (*usecase.ProcessTasksOutput, error)
}

// FollowUpWorker roda o ciclo completo (sync → reconcile → process) de hora
// em hora. O mutex serializa as rodadas: duas passadas simultâneas sobre as
// mesmas tasks poderiam enviar o mesmo email duas vezes.
type FollowUpWorker struct {
	syncUC       syncExecutor
	updateUC     updateExecutor
	processUC    processExecutor
	tickInterval time.Duration

	mu sync.Mutex
}

func NewFollowUpWorker(syncUC syncExecutor, updateUC updateExecutor, processUC processExecutor) *FollowUpWorker {
	return &FollowUpWorker{
		syncUC:       syncUC,
		updateUC:     updateUC,
		processUC:    processUC,
		tickInterval: 1 * time.Hour,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Printf("🕒 FollowUp Worker iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ FollowUp Worker encerrado")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *FollowUpWorker) runCycle(ctx context.Context) {
	if !w.mu.TryLock() {
		log.Println("⚠️ [CYCLE] Rodada anterior ainda em andamento, pulando")
		return
	}
	defer w.mu.Unlock()

	// Cada etapa é independente; falha numa não impede a seguinte de rodar
	// com o estado que já está no banco.
	if out, err := w.syncUC.Execute(ctx, true); err != nil {
		log.Printf("❌ [CYCLE] Sync de contatos falhou: %v", err)
	} else {
		log.Printf("⚙️ [CYCLE] Sync: %d contato(s)", out.Count)
	}

	if out, err := w.updateUC.Execute(ctx); err != nil {
		log.Printf("❌ [CYCLE] Reconciliação falhou: %v", err)
	} else {
		log.Printf("⚙️ [CYCLE] Reconciliação: %d ativa(s), %d removida(s)", len(out.CurrentTasks), out.Removed)
	}

	if out, err := w.processUC.Execute(ctx); err != nil {
		log.Printf("❌ [CYCLE] Processamento falhou: %v", err)
	} else {
		log.Printf("✅ [CYCLE] Processamento: %d task(s) avaliada(s)", len(out.Tasks))
	}
}
