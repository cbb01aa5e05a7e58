package storage

import "time"

// Sender holds the per-sender monotonic counter. One row per distinct
// sender name, created lazily inside the transaction that accepts the
// sender's first message, mutated only under an exclusive row lock.
type Sender struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;uniqueIndex:uk_sender_username;not null"`
	LastSequence int64  `gorm:"column:last_sequence;not null;default:0"`
}

func (Sender) TableName() string { return "senders" }

// Message is the append-only message record. The composite unique index on
// (sender_name, sender_sequence) is the hard backstop against any
// sequencing bug: a duplicate pair must fail the insert, not be absorbed.
type Message struct {
	MessageID      int64     `gorm:"column:message_id;primaryKey;autoIncrement"`
	SenderName     string    `gorm:"column:sender_name;not null;uniqueIndex:uk_sender_seq,priority:1"`
	Text           string    `gorm:"column:text;type:text;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	SenderSequence int64     `gorm:"column:sender_sequence;not null;uniqueIndex:uk_sender_seq,priority:2"`
}

func (Message) TableName() string { return "messages" }
