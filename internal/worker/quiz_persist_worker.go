package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"coursemcq/internal/model"
	"coursemcq/internal/repository"
)

// QuizPersistWorker consumes completed generation results from the queue
// and stores them, keeping persistence off the request path.
type QuizPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.QuizRepository
	queueName string
	logger    zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewQuizPersistWorker(conn *amqp.Connection, repo *repository.QuizRepository, queueName string, logger zerolog.Logger) *QuizPersistWorker {
	return &QuizPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *QuizPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg model.QuizMessage
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					w.logger.Error().Err(err).Msg("worker decode quiz message failed")
					_ = d.Nack(false, false)
					continue
				}

				quiz := model.Quiz{
					UserID:       msg.UserID,
					CourseCode:   msg.Result.CourseCode,
					NumRequested: msg.Result.NumQuestions,
					NumGenerated: len(msg.Result.Questions),
					GeneratedAt:  msg.Result.GeneratedAt,
				}
				quiz.SetQuestions(msg.Result.Questions)

				if err := w.repo.Create(&quiz); err != nil {
					w.logger.Error().Err(err).Str("course", quiz.CourseCode).Msg("worker persist quiz failed")
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *QuizPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
