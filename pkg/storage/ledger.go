package storage

import "context"

// LedgerStore defines the interface for point balance mutations.
// Balances are plain counters; every mutation is a single atomic numeric
// adjustment at the storage layer, never a read-modify-write of the field.
type LedgerStore interface {
	// CreditPoints adds amount (>0) to the user's balance and returns the new balance.
	CreditPoints(ctx context.Context, userID string, amount int64) (int64, error)

	// DebitPoints subtracts amount (>0) from the user's balance and returns
	// the new balance. The balance check and the subtraction are one atomic
	// step; ErrInsufficientPoints is returned with no partial debit.
	DebitPoints(ctx context.Context, userID string, amount int64) (int64, error)

	// TransferPoints moves amount from one user to the other as a single
	// all-or-nothing operation. If the debit would overdraw, no credit occurs.
	TransferPoints(ctx context.Context, fromUserID, toUserID string, amount int64, transactionID string) error
}
