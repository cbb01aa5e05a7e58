//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/infrastructure/storage"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type IMessageRepository interface {
	// Insert appends the message and returns it with the generated
	// message_id, available before the transaction commits.
	Insert(tx *gorm.DB, senderName, text string, senderSequence int64, createdAt time.Time) (domain.Message, error)
	// RecentWindow returns up to limit messages with message_id <=
	// uptoMessageID, newest first. Bounding by the triggering insert's id
	// keeps the window deterministic with respect to concurrently
	// committing writers.
	RecentWindow(tx *gorm.DB, uptoMessageID int64, limit int) ([]domain.Message, error)
}

type MessageRepository struct {
	log *slog.Logger
}

func NewMessageRepository(log *slog.Logger) IMessageRepository {
	return MessageRepository{log: log}
}

func (m MessageRepository) Insert(tx *gorm.DB, senderName, text string, senderSequence int64, createdAt time.Time) (domain.Message, error) {
	record := storage.Message{
		SenderName:     senderName,
		Text:           text,
		CreatedAt:      createdAt,
		SenderSequence: senderSequence,
	}
	if err := tx.Create(&record).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			// A duplicate (sender_name, sender_sequence) slipped past the
			// row lock. Surface it as a server fault; silently bumping the
			// value would assign a wrong sequence number.
			return domain.Message{}, fmt.Errorf("%w: sender=%q sequence=%d",
				errors.ErrSequenceIntegrity, senderName, senderSequence)
		}
		return domain.Message{}, fmt.Errorf("inserting message for %q: %w", senderName, err)
	}
	return toDomain(record), nil
}

func (m MessageRepository) RecentWindow(tx *gorm.DB, uptoMessageID int64, limit int) ([]domain.Message, error) {
	var records []storage.Message
	err := tx.Where("message_id <= ?", uptoMessageID).
		Order("message_id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("reading recent window upto=%d: %w", uptoMessageID, err)
	}
	return lo.Map(records, func(r storage.Message, _ int) domain.Message {
		return toDomain(r)
	}), nil
}

func toDomain(r storage.Message) domain.Message {
	return domain.Message{
		MessageID:      r.MessageID,
		SenderName:     r.SenderName,
		Text:           r.Text,
		CreatedAt:      r.CreatedAt,
		SenderSequence: r.SenderSequence,
	}
}
