package model

// BitcoinRecordBase holds the fields shared by UTXO records.
type BitcoinRecordBase struct {
	RecordBase
	LockInfo        *LockInfo
	ConflictingHash *string
	Memo            string
}

// LockState evaluates the record's time lock against the last block timestamp.
// It returns nil when the record carries no lock. Without a head timestamp the
// output is assumed to still be locked.
func (r *BitcoinRecordBase) LockState(lastBlockTimestamp *int64) *LockState {
	if r.LockInfo == nil {
		return nil
	}

	locked := true
	if lastBlockTimestamp != nil {
		locked = *lastBlockTimestamp < r.LockInfo.LockedUntil.Unix()
	}

	return &LockState{Locked: locked, Date: r.LockInfo.LockedUntil}
}

// HasConflict reports whether a double-spend of this transaction was observed.
func (r *BitcoinRecordBase) HasConflict() bool {
	return r.ConflictingHash != nil
}

// BitcoinIncomingTransactionRecord is a UTXO transfer received by the wallet.
type BitcoinIncomingTransactionRecord struct {
	BitcoinRecordBase
	From  *string
	Value CoinValue
}

// Accept dispatches to v.VisitBitcoinIncoming.
func (r *BitcoinIncomingTransactionRecord) Accept(v RecordVisitor) { v.VisitBitcoinIncoming(r) }

// BitcoinOutgoingTransactionRecord is a UTXO transfer sent by the wallet.
type BitcoinOutgoingTransactionRecord struct {
	BitcoinRecordBase
	To         *string
	Value      CoinValue
	SentToSelf bool
}

// Accept dispatches to v.VisitBitcoinOutgoing.
func (r *BitcoinOutgoingTransactionRecord) Accept(v RecordVisitor) { v.VisitBitcoinOutgoing(r) }
