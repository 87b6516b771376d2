package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService    service.ProductService
	storage           storage.Storage
	maxUploadBytes    int64
	lowStockThreshold int
}

func NewProductHandler(productService service.ProductService, store storage.Storage, maxUploadBytes int64, lowStockThreshold int) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		storage:           store,
		maxUploadBytes:    maxUploadBytes,
		lowStockThreshold: lowStockThreshold,
	}
}

// ListProducts godoc
//
//	@Summary		List products
//	@Description	Returns a page of products. q filters by title, categoryId restricts to one category.
//	@Tags			Products
//	@Produce		json
//	@Param			q			query		string	false	"Search keyword"
//	@Param			categoryId	query		int		false	"Category ID filter"
//	@Param			page		query		int		false	"Page number (0-based)"	default(0)
//	@Param			size		query		int		false	"Page size"				default(10)
//	@Success		200			{object}	response.APIResponse{body=models.Page[models.Product]}
//	@Failure		500			{object}	response.APIResponse
//	@Router			/api/product [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		pageable := utils.PageableFromQuery(r, models.DefaultPageSize)

		page, err := h.productService.SearchByNameAndCategory(r.Context(), r.URL.Query().Get("q"), utils.QueryInt64Ptr(r, "categoryId"), pageable)
		if err != nil {
			logFailure(logger, "Failed to list products", err)
			response.Error(w, err)
			return
		}

		response.Paged(w, "Lấy danh sách sản phẩm thành công", page)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	response.APIResponse{body=models.Product}
//	@Failure	400	{object}	response.APIResponse	"Invalid ID"
//	@Failure	404	{object}	response.APIResponse	"Product not found"
//	@Router		/api/product/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.FindByID(r.Context(), id)
		if err != nil {
			logFailure(logger, "Failed to get product", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy thông tin sản phẩm thành công", product)
	}
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Accepts JSON, urlencoded or multipart bodies. A multipart images file is stored and its URL saved.
//	@Tags			Products
//	@Accept			json,x-www-form-urlencoded,mpfd
//	@Produce		json
//	@Param			title		formData	string	true	"Title"
//	@Param			quantity	formData	int		true	"Quantity"
//	@Param			price		formData	number	true	"Price"
//	@Param			description	formData	string	false	"Description"
//	@Param			discount	formData	int		false	"Discount percentage"
//	@Param			status		formData	bool	false	"Active"
//	@Param			userId		formData	int		true	"Owner user ID"
//	@Param			categoryId	formData	int		true	"Category ID"
//	@Param			images		formData	file	false	"Product image"
//	@Success		201			{object}	response.APIResponse{body=models.Product}
//	@Failure		400			{object}	response.APIResponse	"Validation error or duplicate title"
//	@Failure		500			{object}	response.APIResponse
//	@Router			/api/product [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid create product input", err)
			response.Error(w, err)
			return
		}

		product, err := h.productService.Create(r.Context(), input)
		if err != nil {
			logFailure(logger, "Failed to create product", err)
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", product.ID))
		response.Created(w, "Thêm sản phẩm thành công", product)
	}
}

// UpdateProduct godoc
//
//	@Summary	Update a product
//	@Tags		Products
//	@Accept		json,x-www-form-urlencoded,mpfd
//	@Produce	json
//	@Param		id			path		int		true	"Product ID"
//	@Param		title		formData	string	false	"Title"
//	@Param		quantity	formData	int		false	"Quantity"
//	@Param		price		formData	number	false	"Price"
//	@Param		description	formData	string	false	"Description"
//	@Param		discount	formData	int		false	"Discount percentage"
//	@Param		status		formData	bool	false	"Active"
//	@Param		categoryId	formData	int		false	"Category ID"
//	@Param		images		formData	file	false	"Product image"
//	@Success	200			{object}	response.APIResponse{body=models.Product}
//	@Failure	400			{object}	response.APIResponse
//	@Failure	404			{object}	response.APIResponse
//	@Router		/api/product/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("productId", id))

		if _, err := h.productService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get product", err)
			response.Error(w, err)
			return
		}

		input, err := h.readInput(w, r)
		if err != nil {
			logFailure(logger, "Invalid update product input", err)
			response.Error(w, err)
			return
		}

		product, err := h.productService.UpdateByID(r.Context(), id, input)
		if err != nil {
			logFailure(logger, "Failed to update product", err)
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully")
		response.Success(w, "Cập nhật sản phẩm thành công", product)
	}
}

// DeleteProduct godoc
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	response.APIResponse
//	@Failure	404	{object}	response.APIResponse
//	@Router		/api/product/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if _, err := h.productService.FindByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to get product", err)
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteByID(r.Context(), id); err != nil {
			logFailure(logger, "Failed to delete product", err)
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted successfully", slog.Int64("productId", id))
		response.Success(w, "Xóa sản phẩm thành công", nil)
	}
}

// ListProductsSortedByPrice godoc
//
//	@Summary	List all products by ascending price
//	@Tags		Products
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{body=[]models.Product}
//	@Failure	500	{object}	response.APIResponse
//	@Router		/api/product/sorted-by-price [get]
func (h *ProductHandler) ListProductsSortedByPrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.FindAllOrderByPriceAsc(r.Context())
		if err != nil {
			logFailure(logger, "Failed to list products by price", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm theo giá thành công", products)
	}
}

// ListProductsByCategory godoc
//
//	@Summary	List all products of a category
//	@Tags		Products
//	@Produce	json
//	@Param		categoryId	path		int	true	"Category ID"
//	@Success	200			{object}	response.APIResponse{body=[]models.Product}
//	@Failure	400			{object}	response.APIResponse
//	@Router		/api/product/category/{categoryId} [get]
func (h *ProductHandler) ListProductsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		categoryID, err := utils.PathID(r, "categoryId")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		products, err := h.productService.FindByCategoryID(r.Context(), categoryID)
		if err != nil {
			logFailure(logger, "Failed to list products of category", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm của category thành công", products)
	}
}

// ListProductsByUser godoc
//
//	@Summary	List all products owned by a user
//	@Tags		Products
//	@Produce	json
//	@Param		userId	path		int	true	"User ID"
//	@Success	200		{object}	response.APIResponse{body=[]models.Product}
//	@Failure	400		{object}	response.APIResponse
//	@Router		/api/product/user/{userId} [get]
func (h *ProductHandler) ListProductsByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, err := utils.PathID(r, "userId")
		if err != nil {
			logger.Warn("Invalid user id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		products, err := h.productService.FindByUserID(r.Context(), userID)
		if err != nil {
			logFailure(logger, "Failed to list products of user", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm của user thành công", products)
	}
}

// ListProductsByPriceRange godoc
//
//	@Summary	List products within a price range
//	@Tags		Products
//	@Produce	json
//	@Param		minPrice	query		number	true	"Minimum price"
//	@Param		maxPrice	query		number	true	"Maximum price"
//	@Success	200			{object}	response.APIResponse{body=[]models.Product}
//	@Failure	400			{object}	response.APIResponse
//	@Router		/api/product/price-range [get]
func (h *ProductHandler) ListProductsByPriceRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		minPrice, err := queryDecimal(r, "minPrice")
		if err != nil {
			logger.Warn("Invalid price range", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		maxPrice, err := queryDecimal(r, "maxPrice")
		if err != nil {
			logger.Warn("Invalid price range", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		products, err := h.productService.FindByPriceRange(r.Context(), minPrice, maxPrice)
		if err != nil {
			logFailure(logger, "Failed to list products by price range", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm theo khoảng giá thành công", products)
	}
}

// ListOutOfStockProducts godoc
//
//	@Summary	List products with zero quantity
//	@Tags		Products
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{body=[]models.Product}
//	@Router		/api/product/out-of-stock [get]
func (h *ProductHandler) ListOutOfStockProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.FindOutOfStock(r.Context())
		if err != nil {
			logFailure(logger, "Failed to list out of stock products", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm hết hàng thành công", products)
	}
}

// ListLowStockProducts godoc
//
//	@Summary	List in-stock products at or below a quantity threshold
//	@Tags		Products
//	@Produce	json
//	@Param		threshold	query		int	false	"Quantity threshold"
//	@Success	200			{object}	response.APIResponse{body=[]models.Product}
//	@Router		/api/product/low-stock [get]
func (h *ProductHandler) ListLowStockProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		threshold := utils.QueryInt(r, "threshold", h.lowStockThreshold)

		products, err := h.productService.FindLowStock(r.Context(), threshold)
		if err != nil {
			logFailure(logger, "Failed to list low stock products", err)
			response.Error(w, err)
			return
		}

		response.Success(w, "Lấy danh sách sản phẩm sắp hết hàng thành công", products)
	}
}

// ListDiscountedProducts godoc
//
//	@Summary	List products with a discount
//	@Tags		Products
//	@Produce	json
//	@Param		page	query		int	false	"Page number (0-based)"	default(0)
//	@Param		size	query		int	false	"Page size"				default(10)
//	@Success	200		{object}	response.APIResponse{body=models.Page[models.Product]}
//	@Router		/api/product/discounted [get]
func (h *ProductHandler) ListDiscountedProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, err := h.productService.FindDiscounted(r.Context(), utils.PageableFromQuery(r, models.DefaultPageSize))
		if err != nil {
			logFailure(logger, "Failed to list discounted products", err)
			response.Error(w, err)
			return
		}

		response.Paged(w, "Lấy danh sách sản phẩm giảm giá thành công", page)
	}
}

func (h *ProductHandler) readInput(w http.ResponseWriter, r *http.Request) (*models.ProductInput, error) {
	form, err := parseBody(w, r, h.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	input := &models.ProductInput{
		Title:       form.String("title"),
		Quantity:    form.Int("quantity"),
		Description: form.String("description"),
		Price:       form.Decimal("price"),
		Discount:    form.Int("discount"),
		Status:      form.Bool("status"),
		UserID:      form.Int64("userId"),
		CategoryID:  form.Int64("categoryId"),
	}

	if err := form.Err(); err != nil {
		return nil, err
	}

	input.Images, err = utils.StoreUpload(h.storage, form, "images", "images", storage.ProductPrefix)
	if err != nil {
		return nil, err
	}

	return input, nil
}

func queryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return decimal.Zero, appErrors.FieldError(key, "Giá không được để trống")
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, appErrors.FieldError(key, "Giá không hợp lệ: "+raw).WithError(err)
	}

	return v, nil
}
