// Package domain contains the core concepts of the feed system.
// Messages are immutable once accepted; the sequence number is the
// 1-based, gapless, per-sender ordinal assigned at acceptance.
package domain

import "time"

// Message represents one accepted message as persisted.
type Message struct {
	MessageID      int64
	SenderName     string
	Text           string
	CreatedAt      time.Time
	SenderSequence int64
}

// WindowLimit bounds the recent window returned for every accepted message.
const WindowLimit = 10
