package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) *models.User {
	if v := args.Get(0); v != nil {
		return v.(*models.User)
	}

	return nil
}

func userList(args mock.Arguments) []*models.User {
	if v := args.Get(0); v != nil {
		return v.([]*models.User)
	}

	return nil
}

func userPage(args mock.Arguments) *models.Page[*models.User] {
	if v := args.Get(0); v != nil {
		return v.(*models.Page[*models.User])
	}

	return nil
}

func (m *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return userList(args), args.Error(1)
}

func (m *UserService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.User], error) {
	args := m.Called(ctx, pageable)
	return userPage(args), args.Error(1)
}

func (m *UserService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.User], error) {
	args := m.Called(ctx, keyword, pageable)
	return userPage(args), args.Error(1)
}

func (m *UserService) FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error) {
	args := m.Called(ctx, name)
	return userList(args), args.Error(1)
}

func (m *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args), args.Error(1)
}

func (m *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args), args.Error(1)
}

func (m *UserService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserService) ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error) {
	args := m.Called(ctx, email, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserService) Save(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args), args.Error(1)
}

func (m *UserService) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserService) Create(ctx context.Context, input *models.UserInput) (*models.User, error) {
	args := m.Called(ctx, input)
	return userOrNil(args), args.Error(1)
}

func (m *UserService) UpdateByID(ctx context.Context, id int64, input *models.UserInput) (*models.User, error) {
	args := m.Called(ctx, id, input)
	return userOrNil(args), args.Error(1)
}
