package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"coursemcq/internal/model"
)

type QuizPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewQuizPublisher(conn *amqp.Connection, queueName string) *QuizPublisher {
	return &QuizPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *QuizPublisher) Publish(ctx context.Context, msg model.QuizMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal quiz payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish quiz failed: %w", err)
	}
	return nil
}
