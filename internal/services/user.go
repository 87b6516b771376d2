package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-admin/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	duplicateUserEmail = "Email đã tồn tại"
	maxPasswordBytes   = 72
)

type UserService interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.User], error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.User], error)
	FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	DeleteByID(ctx context.Context, id int64) error
	Create(ctx context.Context, input *models.UserInput) (*models.User, error)
	UpdateByID(ctx context.Context, id int64, input *models.UserInput) (*models.User, error)
}

type userService struct {
	repo         repository.UserRepository
	categoryRepo repository.CategoryRepository
}

func NewUserService(repo repository.UserRepository, categoryRepo repository.CategoryRepository) UserService {
	return &userService{repo: repo, categoryRepo: categoryRepo}
}

func userNotFound(id int64) string {
	return fmt.Sprintf("Không tìm thấy user với ID: %d", id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) FindAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, queryError(err, "Failed to fetch users")
	}

	return users, nil
}

func (s *userService) FindAllPaged(ctx context.Context, pageable models.Pageable) (*models.Page[*models.User], error) {
	users, total, err := s.repo.FindAllPaged(ctx, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to fetch users")
	}

	return models.NewPage(users, total, pageable), nil
}

// SearchByName falls back to the unfiltered listing for a blank keyword.
func (s *userService) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) (*models.Page[*models.User], error) {
	if strings.TrimSpace(keyword) == "" {
		return s.FindAllPaged(ctx, pageable)
	}

	users, total, err := s.repo.SearchByName(ctx, keyword, pageable)
	if err != nil {
		return nil, queryError(err, "Failed to search users")
	}

	return models.NewPage(users, total, pageable), nil
}

func (s *userService) FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error) {
	users, err := s.repo.FindByFullnameContaining(ctx, name)
	if err != nil {
		return nil, queryError(err, "Failed to search users")
	}

	return users, nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, userNotFound(id), "Failed to fetch user")
	}

	return user, nil
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, fmt.Sprintf("Không tìm thấy user với email: %s", email), "Failed to fetch user")
	}

	return user, nil
}

func (s *userService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, queryError(err, "Failed to check user")
	}

	return exists, nil
}

func (s *userService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, queryError(err, "Failed to check user email")
	}

	return exists, nil
}

func (s *userService) ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error) {
	exists, err := s.repo.ExistsByEmailAndNotID(ctx, normalizeEmail(email), id)
	if err != nil {
		return false, queryError(err, "Failed to check user email")
	}

	return exists, nil
}

func (s *userService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, queryError(err, "Failed to count users")
	}

	return total, nil
}

// Save persists the user as given, including the password column.
func (s *userService) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID != 0 {
		return s.Update(ctx, user)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, writeError(err, "email", duplicateUserEmail, "Failed to create user")
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(userNotFound(user.ID)).WithError(err)
		}

		return nil, writeError(err, "email", duplicateUserEmail, "Failed to update user")
	}

	return user, nil
}

// DeleteByID is silent when the id is absent. The user's products go with it.
func (s *userService) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.DatabaseError("Failed to delete user").WithError(err)
	}

	return nil
}

func (s *userService) Create(ctx context.Context, input *models.UserInput) (*models.User, error) {
	if input == nil {
		input = &models.UserInput{}
	}

	if input.Password == nil || strings.TrimSpace(*input.Password) == "" {
		return nil, appErrors.FieldError("password", "Mật khẩu không được để trống")
	}

	user := &models.User{Categories: []models.Category{}}
	if err := s.apply(ctx, user, input); err != nil {
		return nil, err
	}

	if err := validation.Struct(user); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("email", duplicateUserEmail)
	}

	return s.Save(ctx, user)
}

// UpdateByID keeps the stored password hash when no new password is given.
func (s *userService) UpdateByID(ctx context.Context, id int64, input *models.UserInput) (*models.User, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input != nil {
		if err := s.apply(ctx, current, input); err != nil {
			return nil, err
		}
	}

	if err := validation.Struct(current); err != nil {
		return nil, err
	}

	exists, err := s.ExistsByEmailAndNotID(ctx, current.Email, id)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, appErrors.FieldError("email", duplicateUserEmail)
	}

	return s.Update(ctx, current)
}

func (s *userService) apply(ctx context.Context, user *models.User, input *models.UserInput) error {
	if input.Fullname != nil {
		user.Fullname = validation.Sanitize(*input.Fullname)
	}

	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}

	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return err
		}

		user.Password = hash
	}

	if input.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *input.CategoryIDs)
		if err != nil {
			return err
		}

		user.Categories = categories
	}

	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", appErrors.FieldError("password", "Mật khẩu không được quá 72 byte")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.InternalError("Failed to secure password").WithError(err)
	}

	return string(hash), nil
}

// resolveCategories dedupes the ids, keeps their order and fails on the first
// id with no stored category.
func (s *userService) resolveCategories(ctx context.Context, ids []int64) ([]models.Category, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return []models.Category{}, nil
	}

	found, err := s.categoryRepo.FindAllByID(ctx, unique)
	if err != nil {
		return nil, queryError(err, "Failed to fetch categories")
	}

	byID := make(map[int64]*models.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	categories := make([]models.Category, 0, len(unique))

	for _, id := range unique {
		c, ok := byID[id]
		if !ok {
			return nil, appErrors.FieldError("categoryIds", "Danh mục không tồn tại")
		}

		categories = append(categories, *c)
	}

	return categories, nil
}
