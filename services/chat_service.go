//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/observability"
	"chat-feed/repositories"

	"gorm.io/gorm"
)

type IChatService interface {
	// PostMessage accepts one message: inside a single transaction it locks
	// or creates the sender's counter row, increments it exactly once,
	// inserts the message and reads the recent window bounded by the new
	// message's id. Returns the window, newest first, the new message at
	// the head.
	PostMessage(ctx context.Context, cmd domain.PostMessageCommand) ([]domain.Message, error)
}

// ITxRunner is the transaction-scoped handle provider; satisfied by
// *storage.Store.
type ITxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ChatService struct {
	store        ITxRunner
	senders      repositories.ISenderRepository
	messages     repositories.IMessageRepository
	monitoring   *observability.MonitoringManager
	log          *slog.Logger
	maxRetries   int
	retryBackoff time.Duration
}

func NewChatService(
	store ITxRunner,
	senders repositories.ISenderRepository,
	messages repositories.IMessageRepository,
	monitoring *observability.MonitoringManager,
	log *slog.Logger,
	maxRetries int,
	retryBackoff time.Duration,
) *ChatService {
	return &ChatService{
		store:        store,
		senders:      senders,
		messages:     messages,
		monitoring:   monitoring,
		log:          log,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
	}
}

func (s *ChatService) PostMessage(ctx context.Context, cmd domain.PostMessageCommand) ([]domain.Message, error) {
	if cmd.SenderName == "" {
		return nil, errors.ErrEmptySenderName
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		window, err := s.accept(ctx, cmd)
		if err == nil {
			s.monitoring.IncrAccepted()
			return window, nil
		}

		if stderrors.Is(err, errors.ErrSequenceIntegrity) {
			// Concurrency-control defect: never mask it behind a retry.
			s.monitoring.IncrIntegrityFailures()
			s.log.Error("Sequence integrity violation", "sender", cmd.SenderName, "error", err)
			return nil, err
		}
		if !isTransient(err) {
			s.monitoring.IncrFailed()
			return nil, err
		}

		lastErr = err
		s.monitoring.IncrTransientRetries()
		s.log.Warn("Transient failure, restarting transaction",
			"sender", cmd.SenderName, "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retryBackoff * time.Duration(attempt+1)):
		}
	}

	s.monitoring.IncrContentionFailures()
	return nil, fmt.Errorf("%w: last attempt: %v", errors.ErrContention, lastErr)
}

// accept runs the full sequencing protocol in one transaction. Any error
// rolls the whole transaction back; no partial state (counter bumped
// without its message, or the reverse) ever becomes visible.
func (s *ChatService) accept(ctx context.Context, cmd domain.PostMessageCommand) ([]domain.Message, error) {
	var window []domain.Message
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		sender, err := s.senders.AcquireForUpdate(tx, cmd.SenderName)
		if err != nil {
			return err
		}
		seq, err := s.senders.IncrementSequence(tx, sender)
		if err != nil {
			return err
		}
		msg, err := s.messages.Insert(tx, cmd.SenderName, cmd.Text, seq, time.Now().UTC())
		if err != nil {
			return err
		}
		window, err = s.messages.RecentWindow(tx, msg.MessageID, domain.WindowLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return window, nil
}
