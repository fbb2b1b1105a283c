package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/bankwallet/internal/common"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// GetFavoriteCoinUIDs returns favorite coins in the order they were added.
func (s *SQLiteStorage) GetFavoriteCoinUIDs(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT coin_uid FROM favorite_coins ORDER BY position, coin_uid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	uids := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		uids = append(uids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return uids, nil
}

// AddFavorite appends coinUID to the favorites. Adding an existing favorite
// returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) AddFavorite(ctx context.Context, coinUID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(coinUID, "coinUID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorite_coins (coin_uid, position)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM favorite_coins))
	`, coinUID)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: coin %s is already a favorite", common.ErrDuplicateEntry, coinUID)
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes coinUID. Removing an unknown coin returns
// common.ErrNotFound.
func (s *SQLiteStorage) RemoveFavorite(ctx context.Context, coinUID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(coinUID, "coinUID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM favorite_coins WHERE coin_uid = ?`, coinUID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed favorite: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: coin %s is not a favorite", common.ErrNotFound, coinUID)
	}
	return nil
}

// IsFavorite reports whether coinUID is a favorite.
func (s *SQLiteStorage) IsFavorite(ctx context.Context, coinUID string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorite_coins WHERE coin_uid = ?`, coinUID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// corruptionError tags errors from a damaged or foreign database file.
func corruptionError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrCorrupt || sqliteErr.Code == sqlite3.ErrNotADB) {
		return fmt.Errorf("%w: %w", common.ErrDatabaseCorrupted, err)
	}
	return err
}
