package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/repository"
)

func newTestRepos(t *testing.T) (repository.UserRepository, repository.StatementRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	statements := NewStatementRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, statements.Init(context.Background()))
	return users, statements
}

func createTestUser(t *testing.T, users repository.UserRepository, email string) uuid.UUID {
	t.Helper()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	users, _ := newTestRepos(t)
	ctx := context.Background()
	id := createTestUser(t, users, "alice@example.com")

	byID, err := users.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)
	require.False(t, byID.CreatedAt.IsZero())

	byEmail, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	users, _ := newTestRepos(t)
	createTestUser(t, users, "alice@example.com")

	err := users.Create(context.Background(), &domain.User{
		ID:           uuid.New(),
		Name:         "Impostor",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestUserRepositoryNotFound(t *testing.T) {
	users, _ := newTestRepos(t)

	_, err := users.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = users.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStatementRepositoryCreateAndList(t *testing.T) {
	users, statements := newTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "alice@example.com")

	first := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      alice,
		Type:        domain.OperationDeposit,
		Amount:      decimal.RequireFromString("500.25"),
		Description: "paycheck",
	}
	second := &domain.StatementOperation{
		ID:     uuid.New(),
		UserID: alice,
		Type:   domain.OperationWithdraw,
		Amount: decimal.NewFromInt(200),
	}
	require.NoError(t, statements.Create(ctx, first))
	require.NoError(t, statements.Create(ctx, second))

	ops, err := statements.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, first.ID, ops[0].ID)
	require.Equal(t, second.ID, ops[1].ID)
	require.True(t, ops[0].Amount.Equal(decimal.RequireFromString("500.25")))
	require.Equal(t, "paycheck", ops[0].Description)
	require.Nil(t, ops[0].SenderID)
}

func TestStatementRepositoryFindByID(t *testing.T) {
	users, statements := newTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "alice@example.com")

	op := &domain.StatementOperation{
		ID:     uuid.New(),
		UserID: alice,
		Type:   domain.OperationDeposit,
		Amount: decimal.NewFromInt(10),
	}
	require.NoError(t, statements.Create(ctx, op))

	got, err := statements.FindByID(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, alice, got.UserID)

	_, err = statements.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrStatementNotFound)
}

func TestStatementRepositoryTransferPair(t *testing.T) {
	users, statements := newTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "alice@example.com")
	bob := createTestUser(t, users, "bob@example.com")

	sender := alice
	debit := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      alice,
		Type:        domain.OperationTransfer,
		Amount:      decimal.NewFromInt(200),
		Description: "rent",
	}
	credit := &domain.StatementOperation{
		ID:          uuid.New(),
		UserID:      bob,
		SenderID:    &sender,
		Type:        domain.OperationTransfer,
		Amount:      decimal.NewFromInt(200),
		Description: "rent",
	}
	require.NoError(t, statements.CreateTransferPair(ctx, debit, credit))

	aliceOps, err := statements.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceOps, 1)
	require.Nil(t, aliceOps[0].SenderID)

	bobOps, err := statements.ListByUser(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobOps, 1)
	require.NotNil(t, bobOps[0].SenderID)
	require.Equal(t, alice, *bobOps[0].SenderID)
}

func TestStatementRepositoryTransferPairRollsBack(t *testing.T) {
	users, statements := newTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "alice@example.com")
	bob := createTestUser(t, users, "bob@example.com")

	sender := alice
	sharedID := uuid.New()
	debit := &domain.StatementOperation{
		ID:     sharedID,
		UserID: alice,
		Type:   domain.OperationTransfer,
		Amount: decimal.NewFromInt(200),
	}
	// duplicate primary key makes the second insert fail after the first succeeded
	credit := &domain.StatementOperation{
		ID:       sharedID,
		UserID:   bob,
		SenderID: &sender,
		Type:     domain.OperationTransfer,
		Amount:   decimal.NewFromInt(200),
	}
	require.Error(t, statements.CreateTransferPair(ctx, debit, credit))

	aliceOps, err := statements.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, aliceOps, "failed pair must leave no debit leg behind")
}
