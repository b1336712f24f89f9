package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/repository"
)

// StatementRepository keeps the operation log in an append-ordered slice so
// ListByUser reflects creation order without timestamps having to differ.
type StatementRepository struct {
	mu  sync.RWMutex
	ops []domain.StatementOperation
}

func NewStatementRepository() repository.StatementRepository {
	return &StatementRepository{}
}

func (r *StatementRepository) Init(ctx context.Context) error {
	return nil
}

func (r *StatementRepository) Create(ctx context.Context, op *domain.StatementOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(op)
	return nil
}

func (r *StatementRepository) CreateTransferPair(ctx context.Context, debit, credit *domain.StatementOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// both legs land under one lock acquisition, so no reader sees one alone
	r.append(debit)
	r.append(credit)
	return nil
}

func (r *StatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StatementOperation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, op := range r.ops {
		if op.ID == id {
			found := op
			return &found, nil
		}
	}
	return nil, domain.ErrStatementNotFound
}

func (r *StatementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StatementOperation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ops []domain.StatementOperation
	for _, op := range r.ops {
		if op.UserID == userID {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (r *StatementRepository) append(op *domain.StatementOperation) {
	now := time.Now().UTC()
	op.CreatedAt = now
	op.UpdatedAt = now
	r.ops = append(r.ops, *op)
}
