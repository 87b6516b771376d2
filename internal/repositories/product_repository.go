package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]*models.Product, error)
	FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error)
	FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error)
	FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error)
	FindOutOfStock(ctx context.Context) ([]*models.Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	FindDiscounted(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error)
	SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Product, int64, error)
	SearchByNameAndCategory(ctx context.Context, keyword string, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
	CountByStatus(ctx context.Context, active bool) (int64, error)
	Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

var productSortColumns = sortColumns{
	"id":         "p.id",
	"title":      "p.title",
	"price":      "p.price",
	"quantity":   "p.quantity",
	"discount":   "p.discount",
	"createDate": "p.create_date",
}

const productSelect = `
		SELECT p.id, p.title, p.quantity, p.description, p.price, p.discount, p.status,
		p.images, p.create_date, p.user_id, u.fullname, p.category_id, c.name
		FROM products p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN categories c ON c.id = p.category_id`

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		description  sql.NullString
		images       sql.NullString
		categoryID   sql.NullInt64
		categoryName sql.NullString
	)

	err := row.Scan(&product.ID, &product.Title, &product.Quantity, &description, &product.Price, &product.Discount, &product.Status,
		&images, &product.CreateDate, &product.UserID, &product.UserName, &categoryID, &categoryName)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.Images = images.String
	product.CategoryName = categoryName.String

	if categoryID.Valid {
		id := categoryID.Int64
		product.CategoryID = &id
	}

	return product, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// queryPage runs the count and the page query for the same WHERE clause. The
// clause's own placeholders come first, LIMIT and OFFSET are appended after them.
func (r *productRepository) queryPage(ctx context.Context, where string, pageable models.Pageable, args ...any) ([]*models.Product, int64, error) {
	orderBy, err := productSortColumns.orderBy(pageable.Sort, "p.id ASC")
	if err != nil {
		return nil, 0, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s LIMIT $%d OFFSET $%d`, productSelect, where, orderBy, len(args)+1, len(args)+2)

	products, err := r.queryProducts(dbCtx, query, append(args, pageable.Size, pageable.Offset())...)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` ORDER BY p.create_date DESC, p.id DESC`)
}

func (r *productRepository) FindAllPaged(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error) {
	return r.queryPage(ctx, "", pageable)
}

func (r *productRepository) FindAllOrderByPriceAsc(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` ORDER BY p.price ASC, p.id ASC`)
}

func (r *productRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.category_id = $1 ORDER BY p.id ASC`, categoryID)
}

func (r *productRepository) FindByCategoryIDPaged(ctx context.Context, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error) {
	return r.queryPage(ctx, ` WHERE p.category_id = $1`, pageable, categoryID)
}

func (r *productRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.user_id = $1 ORDER BY p.id ASC`, userID)
}

func (r *productRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.price BETWEEN $1 AND $2 ORDER BY p.price ASC, p.id ASC`, minPrice, maxPrice)
}

func (r *productRepository) FindOutOfStock(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.quantity = 0 ORDER BY p.id ASC`)
}

// FindLowStock returns products still in stock but at or below threshold.
func (r *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.queryProducts(dbCtx, productSelect+` WHERE p.quantity > 0 AND p.quantity <= $1 ORDER BY p.quantity ASC, p.id ASC`, threshold)
}

func (r *productRepository) FindDiscounted(ctx context.Context, pageable models.Pageable) ([]*models.Product, int64, error) {
	return r.queryPage(ctx, ` WHERE p.discount > 0`, pageable)
}

func (r *productRepository) SearchByName(ctx context.Context, keyword string, pageable models.Pageable) ([]*models.Product, int64, error) {
	return r.queryPage(ctx, ` WHERE p.title ILIKE $1`, pageable, containsPattern(keyword))
}

func (r *productRepository) SearchByNameAndCategory(ctx context.Context, keyword string, categoryID int64, pageable models.Pageable) ([]*models.Product, int64, error) {
	return r.queryPage(ctx, ` WHERE p.title ILIKE $1 AND p.category_id = $2`, pageable, containsPattern(keyword), categoryID)
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

func (r *productRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM products WHERE LOWER(title) = LOWER($1))`, title).Scan(&exists)

	return exists, err
}

func (r *productRepository) ExistsByTitleAndNotID(ctx context.Context, title string, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM products WHERE LOWER(title) = LOWER($1) AND id <> $2)`, title, id).Scan(&exists)

	return exists, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total)

	return total, err
}

func (r *productRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&total)

	return total, err
}

func (r *productRepository) CountByStatus(ctx context.Context, active bool) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products WHERE status = $1`, active).Scan(&total)

	return total, err
}

func (r *productRepository) Stats(ctx context.Context, lowStockThreshold int) (*models.ProductStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status),
		COUNT(*) FILTER (WHERE NOT status),
		COUNT(*) FILTER (WHERE quantity = 0),
		COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= $1),
		COUNT(*) FILTER (WHERE discount > 0)
		FROM products`

	stats := &models.ProductStats{}

	err := r.DB.QueryRowContext(dbCtx, query, lowStockThreshold).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.OutOfStock, &stats.LowStock, &stats.Discounted)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (title, quantity, description, price, discount, status, images, user_id, category_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, create_date`

	return r.DB.QueryRowContext(dbCtx, query, product.Title, product.Quantity, nullString(product.Description), product.Price, product.Discount,
		product.Status, nullString(product.Images), product.UserID, product.CategoryID).Scan(&product.ID, &product.CreateDate)
}

// UpdateProduct never touches create_date.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET title = $1, quantity = $2, description = $3, price = $4, discount = $5, status = $6, images = $7, user_id = $8, category_id = $9
		WHERE id = $10
		RETURNING create_date`

	return r.DB.QueryRowContext(dbCtx, query, product.Title, product.Quantity, nullString(product.Description), product.Price, product.Discount,
		product.Status, nullString(product.Images), product.UserID, product.CategoryID, product.ID).Scan(&product.CreateDate)
}

func (r *productRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
