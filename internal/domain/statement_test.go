package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceFold(t *testing.T) {
	owner := uuid.New()
	sender := uuid.New()

	statement := []StatementOperation{
		{UserID: owner, Type: OperationDeposit, Amount: decimal.NewFromInt(500)},
		{UserID: owner, Type: OperationWithdraw, Amount: decimal.NewFromInt(200)},
		// credit leg of an inbound transfer
		{UserID: owner, SenderID: &sender, Type: OperationTransfer, Amount: decimal.NewFromInt(150)},
		// debit leg of an outbound transfer
		{UserID: owner, Type: OperationTransfer, Amount: decimal.NewFromInt(50)},
	}

	assert.True(t, Balance(statement).Equal(decimal.NewFromInt(400)))
}

func TestBalanceEmptyStatement(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
}

func TestCredits(t *testing.T) {
	sender := uuid.New()

	assert.True(t, StatementOperation{Type: OperationDeposit}.Credits())
	assert.False(t, StatementOperation{Type: OperationWithdraw}.Credits())
	assert.False(t, StatementOperation{Type: OperationTransfer}.Credits())
	assert.True(t, StatementOperation{Type: OperationTransfer, SenderID: &sender}.Credits())
}
