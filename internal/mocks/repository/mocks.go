// Package repository provides testify mocks for the domain repository
// interfaces, used by use case tests.
package repository

import (
	"context"

	"opencycle/internal/domain/entity"
	"opencycle/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t mockConstructorTestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, userID uuid.UUID, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

// MockItemRepository is a mock implementation of repository.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func NewMockItemRepository(t mockConstructorTestingT) *MockItemRepository {
	m := &MockItemRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemRepository) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) UpdateAvailability(ctx context.Context, itemID, ownerID uuid.UUID, available bool) error {
	return m.Called(ctx, itemID, ownerID, available).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, itemID, ownerID uuid.UUID) error {
	return m.Called(ctx, itemID, ownerID).Error(0)
}

func (m *MockItemRepository) Search(ctx context.Context, query string, limit, offset int) ([]*entity.RankedItem, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RankedItem), args.Error(1)
}

func (m *MockItemRepository) Stats(ctx context.Context, itemID uuid.UUID) (*entity.ItemStats, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ItemStats), args.Error(1)
}

func (m *MockItemRepository) StatsForOwner(ctx context.Context, ownerID uuid.UUID) (*entity.UserStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserStats), args.Error(1)
}

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func NewMockFavoriteRepository(t mockConstructorTestingT) *MockFavoriteRepository {
	m := &MockFavoriteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFavoriteRepository) Find(ctx context.Context, userID, itemID uuid.UUID) (*entity.Favorite, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

// MockItemViewRepository is a mock implementation of repository.ItemViewRepository.
type MockItemViewRepository struct {
	mock.Mock
}

func NewMockItemViewRepository(t mockConstructorTestingT) *MockItemViewRepository {
	m := &MockItemViewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockItemViewRepository) Create(ctx context.Context, view *entity.ItemView) error {
	return m.Called(ctx, view).Error(0)
}

// MockAuthRepository is a mock implementation of repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func NewMockAuthRepository(t mockConstructorTestingT) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

// MockRefreshTokenRepository is a mock implementation of repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t mockConstructorTestingT) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	return m.Called(ctx, hash).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokensByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// StubRepositoryFactory hands out fixed repository instances, letting tests
// run transactional code paths against ordinary mocks.
type StubRepositoryFactory struct {
	Users         repository.UserRepository
	Items         repository.ItemRepository
	Favorites     repository.FavoriteRepository
	ItemViews     repository.ItemViewRepository
	Auths         repository.AuthRepository
	RefreshTokens repository.RefreshTokenRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *StubRepositoryFactory) ItemRepo() repository.ItemRepository { return f.Items }

func (f *StubRepositoryFactory) FavoriteRepo() repository.FavoriteRepository { return f.Favorites }

func (f *StubRepositoryFactory) ItemViewRepo() repository.ItemViewRepository { return f.ItemViews }

func (f *StubRepositoryFactory) AuthRepo() repository.AuthRepository { return f.Auths }

func (f *StubRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}

// StubTransactionManager executes the callback immediately against the stub
// factory, with no real transaction.
type StubTransactionManager struct {
	Factory *StubRepositoryFactory
}

func (m *StubTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
