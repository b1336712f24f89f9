package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OperationType string

const (
	OperationDeposit  OperationType = "deposit"
	OperationWithdraw OperationType = "withdraw"
	OperationTransfer OperationType = "transfer"
)

// StatementOperation is one immutable entry in a user's ledger. A transfer
// produces two of them: the debit leg owned by the sender (SenderID nil) and
// the credit leg owned by the recipient (SenderID set to the sender's id).
type StatementOperation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SenderID    *uuid.UUID
	Type        OperationType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Credits reports whether the operation adds to its owner's balance.
func (op StatementOperation) Credits() bool {
	switch op.Type {
	case OperationDeposit:
		return true
	case OperationTransfer:
		return op.SenderID != nil
	default:
		return false
	}
}

// Balance folds a ledger into the owner's current balance. It is recomputed
// from the full history on every call; nothing caches the result.
func Balance(statement []StatementOperation) decimal.Decimal {
	total := decimal.Zero
	for _, op := range statement {
		if op.Credits() {
			total = total.Add(op.Amount)
		} else {
			total = total.Sub(op.Amount)
		}
	}
	return total
}
