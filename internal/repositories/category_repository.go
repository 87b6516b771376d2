package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/lib/pq"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	FindAllSorted(ctx context.Context, sort *models.Sort) ([]*models.Category, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Category, int64, error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Category, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

var categorySortColumns = sortColumns{
	"id":        "id",
	"name":      "name",
	"sortOrder": "sort_order",
}

const categoryColumns = `id, name, images, sort_order`

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	category := &models.Category{}

	var images sql.NullString

	if err := row.Scan(&category.ID, &category.Name, &images, &category.SortOrder); err != nil {
		return nil, err
	}

	category.Images = images.String

	return category, nil
}

func (r *categoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	categories := []*models.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryCategories(dbCtx, `SELECT `+categoryColumns+` FROM categories ORDER BY id ASC`)
}

func (r *categoryRepository) FindAllSorted(ctx context.Context, sort *models.Sort) ([]*models.Category, error) {
	orderBy, err := categorySortColumns.orderBy(sort, "id ASC")
	if err != nil {
		return nil, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryCategories(dbCtx, `SELECT `+categoryColumns+` FROM categories ORDER BY `+orderBy)
}

func (r *categoryRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Category, int64, error) {
	orderBy, err := categorySortColumns.orderBy(pageable.Sort, "id ASC")
	if err != nil {
		return nil, 0, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY %s LIMIT $1 OFFSET $2`, categoryColumns, orderBy)

	categories, err := r.queryCategories(dbCtx, query, pageable.Size, pageable.Offset())
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Category, int64, error) {
	orderBy, err := categorySortColumns.orderBy(pageable.Sort, "id ASC")
	if err != nil {
		return nil, 0, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := containsPattern(keyword)

	var total int64

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE name ILIKE $1 ORDER BY %s LIMIT $2 OFFSET $3`, categoryColumns, orderBy)

	categories, err := r.queryCategories(dbCtx, query, pattern, pageable.Size, pageable.Offset())
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category, err := scanCategory(r.DB.QueryRowContext(dbCtx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryCategories(dbCtx, `SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1) ORDER BY id ASC`, pq.Array(ids))
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)

	return exists, err
}

func (r *categoryRepository) ExistsByNameAndNotID(ctx context.Context, name string, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`, name, id).Scan(&exists)

	return exists, err
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM categories`).Scan(&total)

	return total, err
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, images, sort_order)
			  VALUES ($1, $2, $3)
			  RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, nullString(category.Images), category.SortOrder).Scan(&category.ID)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, images = $2, sort_order = $3 WHERE id = $4`

	result, err := r.DB.ExecContext(dbCtx, query, category.Name, nullString(category.Images), category.SortOrder, category.ID)
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

	return nil
}

func (r *categoryRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
