package ngo

import "context"

type Repository interface {
	Create(ctx context.Context, n *NGO) error
	GetByID(ctx context.Context, id string) (*NGO, error)
}
