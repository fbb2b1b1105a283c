package transactions

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// Record types accepted by DecodeItems.
const (
	TypeEvmIncoming          = "evm_incoming"
	TypeEvmOutgoing          = "evm_outgoing"
	TypeApprove              = "approve"
	TypeSwap                 = "swap"
	TypeContractCall         = "contract_call"
	TypeContractCreation     = "contract_creation"
	TypeBitcoinIncoming      = "bitcoin_incoming"
	TypeBitcoinOutgoing      = "bitcoin_outgoing"
	TypeBinanceChainIncoming = "binance_incoming"
	TypeBinanceChainOutgoing = "binance_outgoing"
)

type exportFile struct {
	LastBlocks map[string]lastBlockJSON `json:"last_blocks"`
	Records    []recordJSON             `json:"records"`
}

type lastBlockJSON struct {
	Timestamp *int64 `json:"timestamp"`
	Height    int64  `json:"height"`
}

type valueJSON struct {
	Coin   model.Coin `json:"coin"`
	Amount string     `json:"amount"`
}

type currencyValueJSON struct {
	Currency model.Currency  `json:"currency"`
	Value    decimal.Decimal `json:"value"`
}

type lockJSON struct {
	OriginalAddress string `json:"original_address"`
	LockedUntil     int64  `json:"locked_until"`
}

type recordJSON struct {
	Blockchain             model.Blockchain   `json:"blockchain"`
	BlockHeight            *int64             `json:"block_height"`
	ConfirmationsThreshold *int               `json:"confirmations_threshold"`
	Value                  *valueJSON         `json:"value"`
	ValueOut               *valueJSON         `json:"value_out"`
	Fee                    *valueJSON         `json:"fee"`
	CurrencyValue          *currencyValueJSON `json:"currency_value"`
	Lock                   *lockJSON          `json:"lock"`
	ConflictingHash        *string            `json:"conflicting_hash"`
	From                   *string            `json:"from"`
	To                     *string            `json:"to"`
	Type                   string             `json:"type"`
	UID                    string             `json:"uid"`
	Hash                   string             `json:"hash"`
	AccountID              string             `json:"account_id"`
	Spender                string             `json:"spender"`
	Exchange               string             `json:"exchange"`
	Contract               string             `json:"contract"`
	Method                 string             `json:"method"`
	Memo                   string             `json:"memo"`
	Index                  int                `json:"index"`
	Timestamp              int64              `json:"timestamp"`
	Failed                 bool               `json:"failed"`
	SentToSelf             bool               `json:"sent_to_self"`
	ForeignRecipient       bool               `json:"foreign_recipient"`
}

// DecodeItems reads a JSON transaction export and pairs every record with its
// currency value and the last block of its chain.
func DecodeItems(r io.Reader) ([]TransactionItem, error) {
	var file exportFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode transaction export: %w", err)
	}

	items := make([]TransactionItem, 0, len(file.Records))
	for i, raw := range file.Records {
		record, err := raw.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record at index %d: %w", i, err)
		}

		item := TransactionItem{Record: record}
		if raw.CurrencyValue != nil {
			item.CurrencyValue = &model.CurrencyValue{
				Currency: raw.CurrencyValue.Currency,
				Value:    raw.CurrencyValue.Value,
			}
		}
		if head, ok := file.LastBlocks[raw.Blockchain.UID]; ok {
			item.LastBlockInfo = &model.LastBlockInfo{Height: head.Height, Timestamp: head.Timestamp}
		}
		items = append(items, item)
	}

	return items, nil
}

func (r recordJSON) toRecord() (model.TransactionRecord, error) {
	if r.UID == "" {
		return nil, fmt.Errorf("%w: missing uid", common.ErrInvalidRecord)
	}

	base := model.RecordBase{
		Source:                 model.TransactionSource{Blockchain: r.Blockchain, AccountID: r.AccountID},
		BlockHeight:            r.BlockHeight,
		ConfirmationsThreshold: r.ConfirmationsThreshold,
		UID:                    r.UID,
		TransactionHash:        r.Hash,
		TransactionIndex:       r.Index,
		Timestamp:              r.Timestamp,
		Failed:                 r.Failed,
	}
	if r.Fee != nil {
		fee, err := baseUnitsValue(*r.Fee)
		if err != nil {
			return nil, err
		}
		base.Fee = &fee
	}

	switch r.Type {
	case TypeEvmIncoming:
		value, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		return &model.EvmIncomingTransactionRecord{RecordBase: base, From: deref(r.From), Value: value}, nil

	case TypeEvmOutgoing:
		value, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		return &model.EvmOutgoingTransactionRecord{
			RecordBase: base, To: deref(r.To), Value: value, SentToSelf: r.SentToSelf,
		}, nil

	case TypeApprove:
		value, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		return &model.ApproveTransactionRecord{RecordBase: base, Spender: r.Spender, Value: value}, nil

	case TypeSwap:
		valueIn, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		record := &model.SwapTransactionRecord{
			RecordBase:       base,
			ExchangeAddress:  r.Exchange,
			ValueIn:          valueIn,
			ForeignRecipient: r.ForeignRecipient,
		}
		if r.ValueOut != nil {
			valueOut, err := baseUnitsValue(*r.ValueOut)
			if err != nil {
				return nil, err
			}
			record.ValueOut = &valueOut
		}
		return record, nil

	case TypeContractCall:
		return &model.ContractCallTransactionRecord{
			RecordBase: base, ContractAddress: r.Contract, Method: r.Method,
		}, nil

	case TypeContractCreation:
		return &model.ContractCreationTransactionRecord{RecordBase: base}, nil

	case TypeBitcoinIncoming:
		value, err := r.satoshiValue()
		if err != nil {
			return nil, err
		}
		return &model.BitcoinIncomingTransactionRecord{
			BitcoinRecordBase: r.bitcoinBase(base), From: r.From, Value: value,
		}, nil

	case TypeBitcoinOutgoing:
		value, err := r.satoshiValue()
		if err != nil {
			return nil, err
		}
		return &model.BitcoinOutgoingTransactionRecord{
			BitcoinRecordBase: r.bitcoinBase(base), To: r.To, Value: value, SentToSelf: r.SentToSelf,
		}, nil

	case TypeBinanceChainIncoming:
		value, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		return &model.BinanceChainIncomingTransactionRecord{RecordBase: base, From: deref(r.From), Value: value}, nil

	case TypeBinanceChainOutgoing:
		value, err := r.requiredValue()
		if err != nil {
			return nil, err
		}
		return &model.BinanceChainOutgoingTransactionRecord{
			RecordBase: base, To: deref(r.To), Value: value, SentToSelf: r.SentToSelf,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownRecordType, r.Type)
	}
}

func (r recordJSON) bitcoinBase(base model.RecordBase) model.BitcoinRecordBase {
	btc := model.BitcoinRecordBase{
		RecordBase:      base,
		ConflictingHash: r.ConflictingHash,
		Memo:            r.Memo,
	}
	if r.Lock != nil {
		btc.LockInfo = &model.LockInfo{
			LockedUntil:     time.Unix(r.Lock.LockedUntil, 0),
			OriginalAddress: r.Lock.OriginalAddress,
		}
	}
	return btc
}

func (r recordJSON) requiredValue() (model.CoinValue, error) {
	if r.Value == nil {
		return model.CoinValue{}, fmt.Errorf("%w: %s record %s has no value", common.ErrInvalidRecord, r.Type, r.UID)
	}
	return baseUnitsValue(*r.Value)
}

func (r recordJSON) satoshiValue() (model.CoinValue, error) {
	if r.Value == nil {
		return model.CoinValue{}, fmt.Errorf("%w: %s record %s has no value", common.ErrInvalidRecord, r.Type, r.UID)
	}

	sats, err := strconv.ParseInt(r.Value.Amount, 10, 64)
	if err != nil {
		return model.CoinValue{}, fmt.Errorf("%w: invalid satoshi amount %q", common.ErrInvalidRecord, r.Value.Amount)
	}
	amount := btcutil.Amount(sats)
	if amount < 0 || amount > btcutil.MaxSatoshi {
		return model.CoinValue{}, fmt.Errorf("%w: satoshi amount %d out of range", common.ErrInvalidRecord, sats)
	}

	coin := r.Value.Coin
	coin.Decimals = 8
	return model.CoinValue{
		Coin:  coin,
		Value: decimal.NewFromInt(int64(amount)).Div(decimal.NewFromInt(btcutil.SatoshiPerBitcoin)),
	}, nil
}

func baseUnitsValue(v valueJSON) (model.CoinValue, error) {
	raw, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return model.CoinValue{}, fmt.Errorf("%w: invalid amount %q", common.ErrInvalidRecord, v.Amount)
	}
	return model.NewCoinValueFromBaseUnits(v.Coin, raw), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
