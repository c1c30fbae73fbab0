package service

import (
	"context"
	"fmt"
)

// UserDirectory resolves user display names. User accounts live in the
// marketplace's identity service; the gateway only ever needs a name
// for the public bid history.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID int64) (string, error)
}

type maskedDirectory struct{}

// NewMaskedDirectory is the default directory: bidder identities are
// masked in public history.
func NewMaskedDirectory() UserDirectory {
	return &maskedDirectory{}
}

func (m *maskedDirectory) DisplayName(_ context.Context, userID int64) (string, error) {
	return fmt.Sprintf("Bidder %d", userID), nil
}
