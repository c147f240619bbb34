package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier define el contrato del canal de aviso al agente (hoy email).
type LeadNotifier interface {
	SendLeadAlert(payload LeadCapturedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual, más seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falla registrando consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido en la cola: %s", err)
				// Mensaje podrido: va a la DLQ sin requeue para no trancar la cola.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Notificando lead %d (%s)", payload.LeadID, payload.Email)

			if err := w.Notifier.SendLeadAlert(payload); err != nil {
				log.Printf("❌ [WORKER] Error enviando alerta: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de notificaciones esperando en la cola '%s'", queueName)
	<-forever
}
