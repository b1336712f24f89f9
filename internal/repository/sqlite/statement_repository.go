package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/repository"
)

const createStatementsTable = `
CREATE TABLE IF NOT EXISTS statements (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	sender_id TEXT NULL REFERENCES users(id),
	type TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_statements_user_id ON statements(user_id);
`

const insertStatement = `
INSERT INTO statements (id, user_id, sender_id, type, amount, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type StatementRepository struct {
	db *sql.DB
}

func NewStatementRepository(db *sql.DB) repository.StatementRepository {
	return &StatementRepository{db: db}
}

func (r *StatementRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createStatementsTable); err != nil {
		return fmt.Errorf("create statements table: %w", err)
	}
	return nil
}

func (r *StatementRepository) Create(ctx context.Context, op *domain.StatementOperation) error {
	stamp(op)
	if _, err := r.db.ExecContext(ctx, insertStatement, insertArgs(op)...); err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}
	return nil
}

// CreateTransferPair writes both legs inside one transaction so a reader can
// never observe the debit without the credit.
func (r *StatementRepository) CreateTransferPair(ctx context.Context, debit, credit *domain.StatementOperation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	stamp(debit)
	stamp(credit)

	if _, err := tx.ExecContext(ctx, insertStatement, insertArgs(debit)...); err != nil {
		return fmt.Errorf("insert debit leg: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertStatement, insertArgs(credit)...); err != nil {
		return fmt.Errorf("insert credit leg: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer tx: %w", err)
	}
	return nil
}

func (r *StatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StatementOperation, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, sender_id, type, amount, description, created_at, updated_at
FROM statements
WHERE id = ?`,
		id,
	)

	op, err := scanStatement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, err
	}
	return op, nil
}

func (r *StatementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StatementOperation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, sender_id, type, amount, description, created_at, updated_at
FROM statements
WHERE user_id = ?
ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()

	var ops []domain.StatementOperation
	for rows.Next() {
		op, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}
	return ops, nil
}

func stamp(op *domain.StatementOperation) {
	now := time.Now().UTC()
	op.CreatedAt = now
	op.UpdatedAt = now
}

func insertArgs(op *domain.StatementOperation) []any {
	sender := uuid.NullUUID{}
	if op.SenderID != nil {
		sender = uuid.NullUUID{UUID: *op.SenderID, Valid: true}
	}
	return []any{
		op.ID,
		op.UserID,
		sender,
		string(op.Type),
		op.Amount.String(),
		op.Description,
		op.CreatedAt,
		op.UpdatedAt,
	}
}

func scanStatement(row interface {
	Scan(dest ...any) error
}) (*domain.StatementOperation, error) {
	var (
		op     domain.StatementOperation
		sender uuid.NullUUID
		opType string
		amount string
	)
	if err := row.Scan(
		&op.ID,
		&op.UserID,
		&sender,
		&opType,
		&amount,
		&op.Description,
		&op.CreatedAt,
		&op.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan statement: %w", err)
	}

	if sender.Valid {
		id := sender.UUID
		op.SenderID = &id
	}
	op.Type = domain.OperationType(opType)

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse statement amount %q: %w", amount, err)
	}
	op.Amount = parsed
	return &op, nil
}
