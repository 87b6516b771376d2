package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func userList(args mock.Arguments) []*models.User {
	if v := args.Get(0); v != nil {
		return v.([]*models.User)
	}

	return nil
}

func userOrNil(args mock.Arguments) *models.User {
	if v := args.Get(0); v != nil {
		return v.(*models.User)
	}

	return nil
}

func (m *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return userList(args), args.Error(1)
}

func (m *UserRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.User, int64, error) {
	args := m.Called(ctx, pageable)
	return userList(args), args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.User, int64, error) {
	args := m.Called(ctx, keyword, pageable)
	return userList(args), args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error) {
	args := m.Called(ctx, name)
	return userList(args), args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args), args.Error(1)
}

func (m *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error) {
	args := m.Called(ctx, email, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
