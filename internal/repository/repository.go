package repository

import (
	"context"

	"liftlog/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// LogRepository is the persistence adapter for log entries. The owner key
// scopes all operations to one user; the local variant uses a single fixed
// owner. A failed call leaves prior state untouched, the caller retries on
// the next trigger.
type LogRepository interface {
	// LoadAll returns the owner's entries ordered by date descending,
	// recency of creation breaking ties.
	LoadAll(ctx context.Context, owner string) ([]domain.LogEntry, error)
	Insert(ctx context.Context, owner string, entry domain.LogEntry) (domain.LogEntry, error)
	// InsertBatch is used only by the one-shot legacy snapshot migration.
	InsertBatch(ctx context.Context, owner string, entries []domain.LogEntry) error
	// ReplaceBatch stores the entries as one unit, overwriting stored entries
	// sharing an identifier. On error nothing is persisted.
	ReplaceBatch(ctx context.Context, owner string, entries []domain.LogEntry) error
	Delete(ctx context.Context, owner string, id string) error
}

// UserRepository defines the interface for interacting with user data.
// Only the cloud variant has users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
