package repository

import (
	"context"

	"github.com/google/uuid"

	"fin-ledger/internal/domain"
)

// StatementRepository is the append-only store for statement operations.
// Records are never updated or deleted once written.
type StatementRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, op *domain.StatementOperation) error
	// CreateTransferPair appends both legs of a transfer as one atomic unit:
	// after it returns, either both records are visible or neither is.
	CreateTransferPair(ctx context.Context, debit, credit *domain.StatementOperation) error
	// FindByID returns domain.ErrStatementNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StatementOperation, error)
	// ListByUser returns every operation owned by the user in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StatementOperation, error)
}
