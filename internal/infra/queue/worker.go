package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CRMNotifier define o contrato para quem registra os resultados no CRM
type CRMNotifier interface {
	RecordOutcome(ctx context.Context, payload OutcomePayload) error
}

type Worker struct {
	Channel *amqp.Channel
	CRM     CRMNotifier
}

func NewWorker(ch *amqp.Channel, crm CRMNotifier) *Worker {
	return &Worker{
		Channel: ch,
		CRM:     crm,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload OutcomePayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre: rejeita sem requeue para não travar a fila
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao registrar no CRM: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de outcomes rodando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload OutcomePayload) error {
	switch payload.Status {
	case "sent", "failed":
		return w.CRM.RecordOutcome(ctx, payload)
	default:
		// Status desconhecido: dá ACK e segue, não sabemos tratar
		log.Printf("⚠️ [WORKER] Status desconhecido: %s (task %s)", payload.Status, payload.TaskID)
		return nil
	}
}
