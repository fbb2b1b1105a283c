package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/bankwallet/internal/model"
)

// SaveWalletConnectSession stores session. Saving an existing session is a no-op.
func (s *SQLiteStorage) SaveWalletConnectSession(ctx context.Context, session model.WalletConnectSession) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO wallet_connect_v2_sessions (account_id, topic)
		VALUES (?, ?)
	`, session.AccountID, session.Topic)
	if err != nil {
		return fmt.Errorf("failed to save wallet connect session: %w", err)
	}
	return nil
}

// GetWalletConnectSessions returns the sessions of accountID.
func (s *SQLiteStorage) GetWalletConnectSessions(ctx context.Context, accountID string) ([]model.WalletConnectSession, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.querySessions(ctx, `
		SELECT account_id, topic FROM wallet_connect_v2_sessions
		WHERE account_id = ?
		ORDER BY topic
	`, accountID)
}

// GetAllWalletConnectSessions returns every stored session.
func (s *SQLiteStorage) GetAllWalletConnectSessions(ctx context.Context) ([]model.WalletConnectSession, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.querySessions(ctx, `
		SELECT account_id, topic FROM wallet_connect_v2_sessions
		ORDER BY account_id, topic
	`)
}

// DeleteWalletConnectSession removes one session.
func (s *SQLiteStorage) DeleteWalletConnectSession(ctx context.Context, accountID, topic string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(model.WalletConnectSession{AccountID: accountID, Topic: topic}); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM wallet_connect_v2_sessions WHERE account_id = ? AND topic = ?
	`, accountID, topic)
	if err != nil {
		return fmt.Errorf("failed to delete wallet connect session: %w", err)
	}
	return nil
}

// DeleteWalletConnectSessionsByAccount removes every session of accountID.
func (s *SQLiteStorage) DeleteWalletConnectSessionsByAccount(ctx context.Context, accountID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM wallet_connect_v2_sessions WHERE account_id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet connect sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) querySessions(ctx context.Context, query string, args ...any) ([]model.WalletConnectSession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet connect sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []model.WalletConnectSession{}
	for rows.Next() {
		var session model.WalletConnectSession
		if err := rows.Scan(&session.AccountID, &session.Topic); err != nil {
			return nil, fmt.Errorf("failed to scan wallet connect session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet connect sessions: %w", err)
	}
	return sessions, nil
}
