package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/lib/pq"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.User, int64, error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.User, int64, error)
	FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

var userSortColumns = sortColumns{
	"id":       "id",
	"fullname": "fullname",
	"email":    "email",
}

const userColumns = `id, fullname, email, password, phone`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{Categories: []models.Category{}}

	var phone sql.NullString

	if err := row.Scan(&user.ID, &user.Fullname, &user.Email, &user.Password, &phone); err != nil {
		return nil, err
	}

	user.Phone = phone.String

	return user, nil
}

// queryUsers scans the users and then fills their categories with one extra query.
func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	users := []*models.User{}

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadCategories(ctx, users...); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) loadCategories(ctx context.Context, users ...*models.User) error {
	if len(users) == 0 {
		return nil
	}

	byID := make(map[int64]*models.User, len(users))
	ids := make([]int64, 0, len(users))

	for _, u := range users {
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	query := `
		SELECT uc.user_id, c.id, c.name, c.images, c.sort_order
		FROM user_categories uc
		JOIN categories c ON c.id = uc.category_id
		WHERE uc.user_id = ANY($1)
		ORDER BY c.id ASC`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var (
			userID   int64
			category models.Category
			images   sql.NullString
		)

		if err := rows.Scan(&userID, &category.ID, &category.Name, &images, &category.SortOrder); err != nil {
			return err
		}

		category.Images = images.String

		if u, ok := byID[userID]; ok {
			u.Categories = append(u.Categories, category)
		}
	}

	return rows.Err()
}

func (r *userRepository) queryPage(ctx context.Context, where string, pageable models.Pageable, args ...any) ([]*models.User, int64, error) {
	orderBy, err := userSortColumns.orderBy(pageable.Sort, "id ASC")
	if err != nil {
		return nil, 0, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d`, userColumns, where, orderBy, len(args)+1, len(args)+2)

	users, err := r.queryUsers(dbCtx, query, append(args, pageable.Size, pageable.Offset())...)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryUsers(dbCtx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
}

func (r *userRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.User, int64, error) {
	return r.queryPage(ctx, "", pageable)
}

func (r *userRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.User, int64, error) {
	return r.queryPage(ctx, ` WHERE fullname ILIKE $1`, pageable, containsPattern(keyword))
}

func (r *userRepository) FindByFullnameContaining(ctx context.Context, name string) ([]*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryUsers(dbCtx, `SELECT `+userColumns+` FROM users WHERE fullname ILIKE $1 ORDER BY id ASC`, containsPattern(name))
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(dbCtx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := r.loadCategories(dbCtx, user); err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)

	return exists, err
}

func (r *userRepository) ExistsByEmailAndNotID(ctx context.Context, email string, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`, email, id).Scan(&exists)

	return exists, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM users`).Scan(&total)

	return total, err
}

// CreateUser inserts the row and its category links in one transaction.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `INSERT INTO users (fullname, email, password, phone)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	if err := tx.QueryRowContext(dbCtx, query, user.Fullname, user.Email, user.Password, nullString(user.Phone)).Scan(&user.ID); err != nil {
		return err
	}

	if err := insertUserCategories(dbCtx, tx, user.ID, user.CategoryIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateUser rewrites the row and replaces the category links with user.Categories.
func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `UPDATE users SET fullname = $1, email = $2, password = $3, phone = $4 WHERE id = $5`

	result, err := tx.ExecContext(dbCtx, query, user.Fullname, user.Email, user.Password, nullString(user.Phone), user.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM user_categories WHERE user_id = $1`, user.ID); err != nil {
		return err
	}

	if err := insertUserCategories(dbCtx, tx, user.ID, user.CategoryIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

func insertUserCategories(ctx context.Context, tx *sql.Tx, userID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `INSERT INTO user_categories (user_id, category_id)
			  SELECT $1, UNNEST($2::bigint[])
			  ON CONFLICT DO NOTHING`

	_, err := tx.ExecContext(ctx, query, userID, pq.Array(categoryIDs))

	return err
}

func (r *userRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
