package errors

import "fmt"

var (
	// ErrSequenceIntegrity signals a duplicate (sender_name, sender_sequence)
	// pair reached the database despite the row lock. This is a concurrency
	// control defect, never a condition to retry.
	ErrSequenceIntegrity = fmt.Errorf("sender sequence integrity violation")

	// ErrContention is returned once transient database failures
	// (deadlock victim, lock wait timeout, dropped connection) have
	// exhausted the configured retry budget.
	ErrContention = fmt.Errorf("transaction contention, retries exhausted")

	ErrEmptySenderName = fmt.Errorf("sender name must not be empty")
	ErrTextTooLong     = fmt.Errorf("message text exceeds the configured limit")
	ErrWorkerPanic     = fmt.Errorf("worker panic")
)
