package mocks

import (
	"context"
	"courtbook/infras/postgres"
)

type transactorImpl struct {
}

// WithinTx implements postgres.Transactor without a database.
func (t *transactorImpl) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Savepoint implements postgres.Transactor without a database.
func (t *transactorImpl) Savepoint(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
