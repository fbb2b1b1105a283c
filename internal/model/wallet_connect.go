package model

// WalletConnectSession associates a wallet account with a wallet-connect v2 session topic.
type WalletConnectSession struct {
	AccountID string
	Topic     string
}
