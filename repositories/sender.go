//go:generate go run go.uber.org/mock/mockgen -source=sender.go -destination=../mocks/mock_sender_repository.go -package=mocks
package repositories

import (
	"errors"
	"fmt"
	"log/slog"

	"chat-feed/infrastructure/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSenderRace reports that two transactions tried to create the same
// brand-new sender at once. The username unique index rejected the loser;
// re-running the transaction will find the winner's row and lock it.
var ErrSenderRace = fmt.Errorf("concurrent first message for a new sender")

type ISenderRepository interface {
	// AcquireForUpdate reads the sender row under an exclusive row lock,
	// creating it with last_sequence = 0 on first contact. The returned
	// row stays locked until the surrounding transaction ends.
	AcquireForUpdate(tx *gorm.DB, username string) (*storage.Sender, error)
	// IncrementSequence bumps last_sequence by exactly one and returns the
	// new value. Must only be called on a row held by AcquireForUpdate.
	IncrementSequence(tx *gorm.DB, sender *storage.Sender) (int64, error)
}

type SenderRepository struct {
	log *slog.Logger
	// rowLocking is false on dialects without FOR UPDATE (embedded sqlite),
	// where the single writer connection provides the same exclusion.
	rowLocking bool
}

func NewSenderRepository(log *slog.Logger, rowLocking bool) ISenderRepository {
	return SenderRepository{log: log, rowLocking: rowLocking}
}

func (r SenderRepository) AcquireForUpdate(tx *gorm.DB, username string) (*storage.Sender, error) {
	q := tx
	if r.rowLocking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var sender storage.Sender
	err := q.Where("username = ?", username).First(&sender).Error
	if err == nil {
		return &sender, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("locking sender %q: %w", username, err)
	}

	// First message from this name: create the counter row inside the open
	// transaction. Create flushes, so the generated id is usable before
	// commit. A concurrent first-timer may have won the insert race; the
	// username unique index catches it and the caller restarts cleanly.
	sender = storage.Sender{Username: username, LastSequence: 0}
	if err = tx.Create(&sender).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Debug("Lost first-message race, transaction will restart", "username", username)
			return nil, ErrSenderRace
		}
		return nil, fmt.Errorf("creating sender %q: %w", username, err)
	}
	return &sender, nil
}

func (r SenderRepository) IncrementSequence(tx *gorm.DB, sender *storage.Sender) (int64, error) {
	next := sender.LastSequence + 1
	err := tx.Model(&storage.Sender{}).
		Where("id = ?", sender.ID).
		Update("last_sequence", next).Error
	if err != nil {
		return 0, fmt.Errorf("incrementing sequence for %q: %w", sender.Username, err)
	}
	sender.LastSequence = next
	return next, nil
}
