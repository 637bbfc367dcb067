package repositories

import "context"

// Repository groups the repositories of the service with their shared connection
type Repository interface {
	Quiz() QuizRepository
	Ping(ctx context.Context) error
	Close() error
}
