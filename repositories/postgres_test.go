package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"chat-feed/infrastructure/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// These tests exercise the real FOR UPDATE lock under parallel writers.
// They need a reachable database, e.g.:
//
//	TEST_POSTGRES_URL="host=localhost port=5432 user=feed password=feed dbname=feed_test sslmode=disable"
func newPostgresStore(t *testing.T) *storage.Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	store, err := storage.OpenPostgres(dsn, slog.Default(), storage.PoolConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE messages").Error; err != nil {
			return err
		}
		return tx.Exec("TRUNCATE senders RESTART IDENTITY").Error
	})
	require.NoError(t, err)
	return store
}

func acceptOnce(store *storage.Store, senders ISenderRepository, messages IMessageRepository, name, text string) error {
	return store.WithTx(context.Background(), func(tx *gorm.DB) error {
		sender, err := senders.AcquireForUpdate(tx, name)
		if err != nil {
			return err
		}
		seq, err := senders.IncrementSequence(tx, sender)
		if err != nil {
			return err
		}
		_, err = messages.Insert(tx, name, text, seq, time.Now().UTC())
		return err
	})
}

func Test_Postgres_ConcurrentSameSender_NoGapsNoDuplicates(t *testing.T) {
	req := require.New(t)
	store := newPostgresStore(t)
	senders := NewSenderRepository(slog.Default(), store.RowLocking())
	messages := NewMessageRepository(slog.Default())

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- acceptOnce(store, senders, messages, "Bob", fmt.Sprintf("msg %d", i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	var sequences []int64
	err := store.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Model(&storage.Message{}).
			Where("sender_name = ?", "Bob").
			Order("sender_sequence").
			Pluck("sender_sequence", &sequences).Error
	})
	req.NoError(err)
	req.Len(sequences, writers)
	for i, seq := range sequences {
		req.Equal(int64(i+1), seq, "gapless 1..N, no duplicates")
	}

	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		var sender storage.Sender
		if err := tx.Where("username = ?", "Bob").First(&sender).Error; err != nil {
			return err
		}
		req.Equal(int64(writers), sender.LastSequence)
		return nil
	})
	req.NoError(err)
}

func Test_Postgres_ConcurrentFirstContact_SingleSenderRow(t *testing.T) {
	req := require.New(t)
	store := newPostgresStore(t)
	senders := NewSenderRepository(slog.Default(), store.RowLocking())
	messages := NewMessageRepository(slog.Default())

	// Two first-time writers race to create the same sender. One of them
	// loses the insert race and must come back as ErrSenderRace; a plain
	// re-run then succeeds, which is what the service layer does.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := acceptOnce(store, senders, messages, "Newbie", fmt.Sprintf("hello %d", i))
			if stderrors.Is(err, ErrSenderRace) {
				err = acceptOnce(store, senders, messages, "Newbie", fmt.Sprintf("hello again %d", i))
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	var senderCount int64
	err := store.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Model(&storage.Sender{}).Where("username = ?", "Newbie").Count(&senderCount).Error
	})
	req.NoError(err)
	req.Equal(int64(1), senderCount)
}
