package model

import (
	"fmt"
	"time"
)

// StatusKind enumerates the lifecycle states of a transaction.
type StatusKind int

const (
	// StatusPending means the transaction is not yet included in a block.
	StatusPending StatusKind = iota
	// StatusProcessing means the transaction is mined but not deep enough.
	StatusProcessing
	// StatusConfirmed means the transaction reached the required depth.
	StatusConfirmed
	// StatusFailed means the transaction was mined and reverted.
	StatusFailed
)

// TransactionStatus is derived from a record and the chain head, never stored.
type TransactionStatus struct {
	Kind StatusKind
	// Progress is only meaningful for StatusProcessing and lies in [0, 1].
	Progress float64
}

// Pending returns the pending status.
func Pending() TransactionStatus { return TransactionStatus{Kind: StatusPending} }

// Confirmed returns the confirmed status.
func Confirmed() TransactionStatus { return TransactionStatus{Kind: StatusConfirmed} }

// Failed returns the failed status.
func Failed() TransactionStatus { return TransactionStatus{Kind: StatusFailed} }

// Processing returns a processing status with progress clamped to [0, 1].
func Processing(progress float64) TransactionStatus {
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	return TransactionStatus{Kind: StatusProcessing, Progress: progress}
}

func (s TransactionStatus) String() string {
	switch s.Kind {
	case StatusPending:
		return "Pending"
	case StatusProcessing:
		return fmt.Sprintf("Processing(%.2f)", s.Progress)
	case StatusConfirmed:
		return "Confirmed"
	case StatusFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s.Kind)
	}
}

// LastBlockInfo is the latest known head of a chain.
type LastBlockInfo struct {
	Height    int64
	Timestamp *int64
}

// LockInfo describes a time-locked UTXO output.
type LockInfo struct {
	LockedUntil     time.Time
	OriginalAddress string
}

// LockState is the evaluation of a LockInfo against the chain head time.
type LockState struct {
	Locked bool
	Date   time.Time
}
