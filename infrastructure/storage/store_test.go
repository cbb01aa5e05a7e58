package storage

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLite_MigratesSchema(t *testing.T) {
	req := require.New(t)
	store, err := OpenSQLite(":memory:", slog.Default())
	req.NoError(err)
	defer store.Close()

	req.False(store.RowLocking())
	req.NoError(store.Ping(context.Background()))

	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		req.True(tx.Migrator().HasTable(&Sender{}))
		req.True(tx.Migrator().HasTable(&Message{}))
		return nil
	})
	req.NoError(err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	req := require.New(t)
	store, err := OpenSQLite(":memory:", slog.Default())
	req.NoError(err)
	defer store.Close()

	boom := fmt.Errorf("abort")
	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&Sender{Username: "ghost"}).Error; err != nil {
			return err
		}
		return boom
	})
	req.ErrorIs(err, boom)

	var count int64
	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Model(&Sender{}).Count(&count).Error
	})
	req.NoError(err)
	req.Zero(count, "nothing from the aborted transaction may be visible")
}

func TestWithTx_CommitsOnNil(t *testing.T) {
	req := require.New(t)
	store, err := OpenSQLite(":memory:", slog.Default())
	req.NoError(err)
	defer store.Close()

	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&Message{
			SenderName:     "Alice",
			Text:           "hello",
			CreatedAt:      time.Now().UTC(),
			SenderSequence: 1,
		}).Error
	})
	req.NoError(err)

	var count int64
	err = store.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Model(&Message{}).Count(&count).Error
	})
	req.NoError(err)
	req.Equal(int64(1), count)
}
