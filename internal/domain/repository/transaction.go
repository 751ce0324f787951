package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the function
	// returns an error, the transaction is rolled back; otherwise it is
	// committed. All repository operations obtained from the factory use the
	// same transaction.
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside an Execute callback shares one
// database connection.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ItemRepo() ItemRepository
	FavoriteRepo() FavoriteRepository
	ItemViewRepo() ItemViewRepository
	AuthRepo() AuthRepository
	RefreshTokenRepo() RefreshTokenRepository
}
