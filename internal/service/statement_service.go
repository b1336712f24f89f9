package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/repository"
)

// StatementService coordinates ledger operations backed by the user and
// statement stores.
type StatementService interface {
	// GetBalance returns the user's full ledger in creation order together
	// with the balance folded from it.
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, []domain.StatementOperation, error)
	// CreateStatement appends a single deposit or withdraw record.
	CreateStatement(ctx context.Context, userID uuid.UUID, opType domain.OperationType, amount decimal.Decimal, description string) (*domain.StatementOperation, error)
	// CreateTransfer appends the debit and credit legs atomically and returns
	// the credit leg (the recipient's copy).
	CreateTransfer(ctx context.Context, senderID, recipientID uuid.UUID, amount decimal.Decimal, description string) (*domain.StatementOperation, error)
	// GetOperation returns a single operation owned by the user.
	GetOperation(ctx context.Context, userID, statementID uuid.UUID) (*domain.StatementOperation, error)
}

type statementService struct {
	users      repository.UserRepository
	statements repository.StatementRepository

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewStatementService(users repository.UserRepository, statements repository.StatementRepository) StatementService {
	return &statementService{
		users:      users,
		statements: statements,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *statementService) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, []domain.StatementOperation, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return decimal.Zero, nil, err
	}

	ops, err := s.statements.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return domain.Balance(ops), ops, nil
}

func (s *statementService) CreateStatement(ctx context.Context, userID uuid.UUID, opType domain.OperationType, amount decimal.Decimal, description string) (*domain.StatementOperation, error) {
	if opType != domain.OperationDeposit && opType != domain.OperationWithdraw {
		return nil, fmt.Errorf("unsupported operation type %q", opType)
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	// balance check and append are one atomic unit per user; without this two
	// concurrent withdrawals could both validate against a stale balance
	unlock := s.lockUsers(userID)
	defer unlock()

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if opType == domain.OperationWithdraw {
		ops, err := s.statements.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if domain.Balance(ops).LessThan(amount) {
			return nil, domain.ErrInsufficientFunds
		}
	}

	op := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Description: description,
	}
	if err := s.statements.Create(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *statementService) CreateTransfer(ctx context.Context, senderID, recipientID uuid.UUID, amount decimal.Decimal, description string) (*domain.StatementOperation, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if senderID == recipientID {
		return nil, domain.ErrSelfTransfer
	}

	unlock := s.lockUsers(senderID, recipientID)
	defer unlock()

	if _, err := s.users.FindByID(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}

	ops, err := s.statements.ListByUser(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if domain.Balance(ops).LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	sender := senderID
	debit := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      senderID,
		Type:        domain.OperationTransfer,
		Amount:      amount,
		Description: description,
	}
	credit := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      recipientID,
		SenderID:    &sender,
		Type:        domain.OperationTransfer,
		Amount:      amount,
		Description: description,
	}

	if err := s.statements.CreateTransferPair(ctx, debit, credit); err != nil {
		return nil, err
	}
	return credit, nil
}

func (s *statementService) GetOperation(ctx context.Context, userID, statementID uuid.UUID) (*domain.StatementOperation, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	op, err := s.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	// a foreign user's record must look exactly like a missing one
	if op.UserID != userID {
		return nil, domain.ErrStatementNotFound
	}
	return op, nil
}

// lockUsers serializes mutating operations per ledger owner. Multiple ids are
// locked in byte order so opposing transfers cannot deadlock.
func (s *statementService) lockUsers(ids ...uuid.UUID) func() {
	if len(ids) > 1 && bytes.Compare(ids[0][:], ids[1][:]) > 0 {
		ids[0], ids[1] = ids[1], ids[0]
	}

	locked := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		s.mu.Lock()
		lock, ok := s.locks[id]
		if !ok {
			lock = &sync.Mutex{}
			s.locks[id] = lock
		}
		s.mu.Unlock()

		lock.Lock()
		locked = append(locked, lock)
	}

	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}
