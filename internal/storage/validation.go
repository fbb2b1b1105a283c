package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bankwallet/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidSession = errors.New("invalid wallet connect session")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not blank.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSession(session model.WalletConnectSession) error {
	if strings.TrimSpace(session.AccountID) == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidSession)
	}
	if strings.TrimSpace(session.Topic) == "" {
		return fmt.Errorf("%w: missing topic", ErrInvalidSession)
	}
	return nil
}
