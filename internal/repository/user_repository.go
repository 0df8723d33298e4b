package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}
