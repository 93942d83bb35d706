package usecases

import "context"

type transactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
