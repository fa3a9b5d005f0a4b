package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id bson.ObjectID) error
}

type tokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}
