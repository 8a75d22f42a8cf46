package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/cart-recovery/internal/entity"
	"github.com/xavierca1/cart-recovery/internal/infra/integration/coreilla"
	"github.com/xavierca1/cart-recovery/internal/infra/mail"
	"github.com/xavierca1/cart-recovery/internal/infra/queue"
)

// ProcessTasksUseCase é a máquina de estados da sequência: para cada task
// aberta decide se o próximo email deve sair, dispara o webhook, interpreta a
// resposta e persiste a transição. Estados: sequence=nil → 0 → 1 → ... →
// task apagada. A única transição de sucesso é o avanço após envio confirmado;
// todo o resto deixa a task como está para a próxima rodada tentar de novo.
type ProcessTasksUseCase struct {
	TaskRepo TaskRepositoryInterface
	StepRepo StepRepositoryInterface
	Sender   FollowUpSender
	Renderer CartRenderer
	Schedule *entity.SequenceSchedule

	// Opcionais (nil desliga, como o EmailService do checkout)
	Queue        QueueProducerInterface
	ReportMailer ReportSender
	ReportTo     string
}

func NewProcessTasksUseCase(
	taskRepo TaskRepositoryInterface,
	stepRepo StepRepositoryInterface,
	sender FollowUpSender,
	renderer CartRenderer,
	schedule *entity.SequenceSchedule,
	producer QueueProducerInterface,
	reportMailer ReportSender,
	reportTo string,
) *ProcessTasksUseCase {
	return &ProcessTasksUseCase{
		TaskRepo:     taskRepo,
		StepRepo:     stepRepo,
		Sender:       sender,
		Renderer:     renderer,
		Schedule:     schedule,
		Queue:        producer,
		ReportMailer: reportMailer,
		ReportTo:     reportTo,
	}
}

func (uc *ProcessTasksUseCase) Execute(ctx context.Context) (*ProcessTasksOutput, error) {
	tasks, err := uc.TaskRepo.ListOpen(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to load open tasks: " + err.Error(),
		}
	}

	now := time.Now().UTC()
	currentHour := now.Hour()

	results := make([]TaskResult, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, uc.evaluate(ctx, task, now, currentHour))
	}

	// Auditoria: só resultados sent/failed viram step; skipped não loga
	// (limita o volume da trilha).
	for i := range results {
		tr := &results[i]
		if tr.Status == entity.StatusSkipped {
			continue
		}
		seq := tr.Sequence
		step := &entity.EmailTaskStep{
			ContactID: tr.ContactID,
			Sequence:  &seq,
			Success:   tr.Status == entity.StatusSent,
			Message:   tr.Message,
		}
		if err := uc.StepRepo.Insert(ctx, step); err != nil {
			// Falha de auditoria não derruba a rodada
			log.Printf("⚠️ [PROCESS] Falha ao gravar auditoria do contato %s: %v", tr.ContactID, err)
		}
	}

	uc.publishOutcomes(ctx, results)

	if uc.ReportMailer != nil && uc.ReportTo != "" {
		report := buildRunReport(now, results)
		go func() {
			if err := uc.ReportMailer.SendRunReport(uc.ReportTo, report); err != nil {
				log.Printf("⚠️ [PROCESS] Falha ao enviar relatório da rodada: %v", err)
			}
		}()
	}

	return &ProcessTasksOutput{Tasks: results}, nil
}

// evaluate aplica as regras em ordem estrita de prioridade; a primeira que
// casar decide o destino da task nesta rodada.
func (uc *ProcessTasksUseCase) evaluate(ctx context.Context, task entity.TaskWithContact, now time.Time, currentHour int) TaskResult {
	next := task.NextSequence()
	tr := TaskResult{
		TaskID:      task.ID,
		ContactID:   task.ContactID,
		Email:       task.Contact.PrimaryEmailAddress,
		FirstName:   task.Contact.FirstName,
		LastName:    task.Contact.LastName,
		Sequence:    next,
		Origination: task.Origination,
		CurrentHour: currentHour,
	}

	// 1. Sequência esgotada: fecha a task. O status "sent" aqui é marcador
	// terminal, não confirmação de entrega.
	if next >= uc.Schedule.Len() {
		if err := uc.TaskRepo.Delete(ctx, task.ID); err != nil {
			log.Printf("⚠️ [PROCESS] Falha ao apagar task %s: %v", task.ID, err)
		}
		tr.Status = entity.StatusSent
		tr.Message = "Completed sequence"
		return tr
	}

	sequenceDate := task.Origination.Add(time.Duration(uc.Schedule.DayOffsets[next]) * 24 * time.Hour)
	tr.SequenceDate = &sequenceDate

	// 2. Sem email primário não há para onde enviar; fica para a próxima rodada
	if task.Contact.PrimaryEmailAddress == "" {
		tr.Status = entity.StatusFailed
		tr.Message = "No primary email address"
		return tr
	}

	// 3. A data mínima deste passo ainda não chegou
	if now.Before(sequenceDate) {
		tr.Status = entity.StatusSkipped
		tr.Message = "sequence date not yet reached"
		return tr
	}

	// 4. Janela de horário; o primeiro email da sequência é isento
	if next > 0 && !uc.Schedule.InsideWindow(currentHour) {
		tr.Status = entity.StatusSkipped
		tr.Message = "outside follow-up window"
		return tr
	}

	// 5. Envio
	html, err := uc.Renderer.RenderCart(mail.CartEmailData{
		Items: task.Items,
		Debug: mail.CartDebug{
			Origination: task.Origination,
			Sequence:    strconv.Itoa(next),
			Email:       task.Contact.PrimaryEmailAddress,
			FirstName:   orDefault(task.Contact.FirstName, "NoFirstName"),
			LastName:    orDefault(task.Contact.LastName, "NoLastName"),
		},
	})
	if err != nil {
		tr.Status = entity.StatusFailed
		tr.Message = "failed to render cart template: " + err.Error()
		return tr
	}

	resp, err := uc.Sender.SendFollowUp(ctx, coreilla.SendFollowUpInput{
		CartContentsHTML: html,
		Sequence:         next,
		Email:            task.Contact.PrimaryEmailAddress,
		Name:             displayName(task.Contact.FirstName, task.Contact.LastName),
	})
	if err != nil {
		tr.Status = entity.StatusFailed
		if errors.Is(err, coreilla.ErrInvalidResponse) {
			tr.Message = "Invalid API response"
		} else {
			// Falha de transporte não derruba a rodada; a task tenta de novo
			tr.Message = err.Error()
		}
		return tr
	}

	if resp.ID == "" {
		tr.Status = entity.StatusFailed
		tr.Message = resp.Status
		return tr
	}

	// Única transição de sucesso: avança a sequência após envio confirmado
	if err := uc.TaskRepo.UpdateSequence(ctx, task.ID, next); err != nil {
		// Janela de crash conhecida: o email saiu mas o avanço não persistiu.
		// A próxima rodada pode reenviar este passo (at-least-once).
		log.Printf("⚠️ CRITICAL: email enviado mas sequência não persistida (task %s): %v", task.ID, err)
	}
	tr.Status = entity.StatusSent
	tr.Message = "Email sent successfully"
	return tr
}

func (uc *ProcessTasksUseCase) publishOutcomes(ctx context.Context, results []TaskResult) {
	if uc.Queue == nil {
		return
	}
	for _, tr := range results {
		if tr.Status == entity.StatusSkipped {
			continue
		}
		payload := queue.OutcomePayload{
			TaskID:    tr.TaskID,
			ContactID: tr.ContactID,
			Email:     tr.Email,
			Sequence:  tr.Sequence,
			Status:    string(tr.Status),
			Message:   tr.Message,
		}
		if err := uc.Queue.PublishOutcome(ctx, payload); err != nil {
			// Resultado já está no banco; a fila é melhor esforço
			log.Printf("⚠️ CRITICAL: resultado gravado, mas falha na fila: %v", err)
		}
	}
}

func buildRunReport(when time.Time, results []TaskResult) mail.RunReportData {
	report := mail.RunReportData{When: when, Total: len(results)}
	for _, tr := range results {
		switch tr.Status {
		case entity.StatusSent:
			report.Sent++
		case entity.StatusFailed:
			report.Failed++
		case entity.StatusSkipped:
			report.Skipped++
		}
	}
	return report
}

// displayName monta "First Last"; sem nenhum nome vira "Customer"
func displayName(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return "Customer"
	}
	return name
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
