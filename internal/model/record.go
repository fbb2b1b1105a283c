package model

// Blockchain identifies the chain a record was observed on.
type Blockchain struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// TransactionSource identifies the wallet and chain a record belongs to.
type TransactionSource struct {
	Blockchain Blockchain
	AccountID  string
}

// TransactionRecord is the closed set of on-chain transaction variants.
//
// The set is sealed: every variant lives in this package and dispatches
// through RecordVisitor, so a consumer implementing RecordVisitor handles
// every variant or fails to compile.
type TransactionRecord interface {
	Base() *RecordBase
	Status(lastBlockHeight *int64) TransactionStatus
	Accept(v RecordVisitor)

	isTransactionRecord()
}

// RecordVisitor has one method per TransactionRecord variant.
type RecordVisitor interface {
	VisitEvmIncoming(r *EvmIncomingTransactionRecord)
	VisitEvmOutgoing(r *EvmOutgoingTransactionRecord)
	VisitApprove(r *ApproveTransactionRecord)
	VisitSwap(r *SwapTransactionRecord)
	VisitContractCall(r *ContractCallTransactionRecord)
	VisitContractCreation(r *ContractCreationTransactionRecord)
	VisitBitcoinIncoming(r *BitcoinIncomingTransactionRecord)
	VisitBitcoinOutgoing(r *BitcoinOutgoingTransactionRecord)
	VisitBinanceChainIncoming(r *BinanceChainIncomingTransactionRecord)
	VisitBinanceChainOutgoing(r *BinanceChainOutgoingTransactionRecord)
}

// RecordBase holds the fields shared by every record variant.
type RecordBase struct {
	Source                 TransactionSource
	BlockHeight            *int64
	ConfirmationsThreshold *int
	Fee                    *CoinValue
	UID                    string
	TransactionHash        string
	TransactionIndex       int
	Timestamp              int64
	Failed                 bool
}

// Base returns the shared record fields.
func (r *RecordBase) Base() *RecordBase { return r }

func (r *RecordBase) isTransactionRecord() {}

// Status derives the lifecycle status from the record and the last known
// block height of its chain. A missing block or head degrades to Pending.
func (r *RecordBase) Status(lastBlockHeight *int64) TransactionStatus {
	if r.Failed {
		return Failed()
	}
	if r.BlockHeight == nil || lastBlockHeight == nil {
		return Pending()
	}

	threshold := 1
	if r.ConfirmationsThreshold != nil && *r.ConfirmationsThreshold > 0 {
		threshold = *r.ConfirmationsThreshold
	}

	confirmations := *lastBlockHeight - *r.BlockHeight + 1
	if confirmations >= int64(threshold) {
		return Confirmed()
	}
	return Processing(float64(confirmations) / float64(threshold))
}

// EvmIncomingTransactionRecord is a native or token transfer received on an EVM chain.
type EvmIncomingTransactionRecord struct {
	RecordBase
	From  string
	Value CoinValue
}

// Accept dispatches to v.VisitEvmIncoming.
func (r *EvmIncomingTransactionRecord) Accept(v RecordVisitor) { v.VisitEvmIncoming(r) }

// EvmOutgoingTransactionRecord is a native or token transfer sent on an EVM chain.
type EvmOutgoingTransactionRecord struct {
	RecordBase
	To         string
	Value      CoinValue
	SentToSelf bool
}

// Accept dispatches to v.VisitEvmOutgoing.
func (r *EvmOutgoingTransactionRecord) Accept(v RecordVisitor) { v.VisitEvmOutgoing(r) }

// ApproveTransactionRecord grants a spender an allowance over a token.
type ApproveTransactionRecord struct {
	RecordBase
	Spender string
	Value   CoinValue
}

// Accept dispatches to v.VisitApprove.
func (r *ApproveTransactionRecord) Accept(v RecordVisitor) { v.VisitApprove(r) }

// SwapTransactionRecord exchanges one asset for another through an exchange contract.
type SwapTransactionRecord struct {
	RecordBase
	ExchangeAddress  string
	ValueIn          CoinValue
	ValueOut         *CoinValue
	ForeignRecipient bool
}

// Accept dispatches to v.VisitSwap.
func (r *SwapTransactionRecord) Accept(v RecordVisitor) { v.VisitSwap(r) }

// ContractCallTransactionRecord is an arbitrary contract method invocation.
type ContractCallTransactionRecord struct {
	RecordBase
	ContractAddress string
	Method          string
}

// Accept dispatches to v.VisitContractCall.
func (r *ContractCallTransactionRecord) Accept(v RecordVisitor) { v.VisitContractCall(r) }

// ContractCreationTransactionRecord deploys a new contract.
type ContractCreationTransactionRecord struct {
	RecordBase
}

// Accept dispatches to v.VisitContractCreation.
func (r *ContractCreationTransactionRecord) Accept(v RecordVisitor) { v.VisitContractCreation(r) }

// BinanceChainIncomingTransactionRecord is a transfer received on Binance Chain.
type BinanceChainIncomingTransactionRecord struct {
	RecordBase
	From  string
	Value CoinValue
}

// Accept dispatches to v.VisitBinanceChainIncoming.
func (r *BinanceChainIncomingTransactionRecord) Accept(v RecordVisitor) {
	v.VisitBinanceChainIncoming(r)
}

// BinanceChainOutgoingTransactionRecord is a transfer sent on Binance Chain.
type BinanceChainOutgoingTransactionRecord struct {
	RecordBase
	To         string
	Value      CoinValue
	SentToSelf bool
}

// Accept dispatches to v.VisitBinanceChainOutgoing.
func (r *BinanceChainOutgoingTransactionRecord) Accept(v RecordVisitor) {
	v.VisitBinanceChainOutgoing(r)
}
