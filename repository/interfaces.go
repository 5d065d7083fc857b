package repository

import (
	"context"

	"userRegistry/models"
)

// UserStoreI defines operations on the user registry.
type UserStoreI interface {
	Initialize(ctx context.Context) error
	Insert(ctx context.Context, username, email, password string) (InsertResult, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]models.Account, error)
	Clear(ctx context.Context) (int64, error)
}

var _ UserStoreI = (*UserStore)(nil)
