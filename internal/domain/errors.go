package domain

import "errors"

// Business errors surfaced by the ledger use cases. The HTTP layer maps each
// kind to a transport status; the core never deals in status codes.
var (
	// ErrUserNotFound indicates the referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipientNotFound indicates a transfer's recipient does not exist.
	ErrRecipientNotFound = errors.New("user recipient not found")
	// ErrInsufficientFunds indicates the operation would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrStatementNotFound indicates the statement id is unknown or owned by another user.
	ErrStatementNotFound = errors.New("statement operation not found")
	// ErrEmailInUse indicates a registration email collides with an existing user.
	ErrEmailInUse = errors.New("email already in use")
	// ErrIncorrectCredentials covers both unknown email and wrong password.
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrSelfTransfer indicates sender and recipient are the same user.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
)
