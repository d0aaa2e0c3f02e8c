package port

import (
	"context"

	"mixin_wallet/internal/domain/entity"
)

// PortfolioService refreshes and publishes the user's portfolio snapshot.
type PortfolioService interface {
	RefreshBalances(ctx context.Context, userID string, token string) (*entity.PortfolioSnapshot, error)
	Snapshot() *entity.PortfolioSnapshot
}

// SessionService tracks the authenticated user.
type SessionService interface {
	CompleteAuthentication(ctx context.Context, token string) error
	Disconnect()
	Restore(ctx context.Context) error
	Session() entity.Session
	Token() (string, bool)
	// Credentials returns the user id and token of the connected session as one pair.
	Credentials() (userID, token string, ok bool)
}

// PaymentService builds payment and share URIs for the companion wallet.
type PaymentService interface {
	SpotPay(ctx context.Context, order entity.SpotOrder) (string, error)
	Pay(ctx context.Context, req entity.PaymentRequest) (string, error)
	Share(ctx context.Context, url, title, description, iconURL string) (string, error)
}
