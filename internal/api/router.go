// Package api assembles the HTTP surface: JSON API, GraphQL, admin pages,
// uploaded files and the ops endpoints.
package api

import (
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/aaravmahajanofficial/catalog-admin/docs"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/graph"
	"github.com/aaravmahajanofficial/catalog-admin/internal/metrics"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
	"github.com/aaravmahajanofficial/catalog-admin/internal/web"
)

type Services struct {
	Category service.CategoryService
	Product  service.ProductService
	User     service.UserService
}

type Options struct {
	MaxUploadBytes    int64
	LowStockThreshold int
	AllowedOrigins    []string
	// Health serves /health; nil leaves the route unregistered.
	Health      http.Handler
	ServiceName string
	// RateLimiter throttles JSON and GraphQL writes; nil disables it.
	RateLimiter middleware.RateLimiter
}

// NewRouter wires every route. Tracing is the outermost middleware and metrics
// sits directly on the mux.
func NewRouter(svc Services, store storage.Storage, opts Options) (http.Handler, error) {
	mux := http.NewServeMux()
	cors := middleware.CORS(opts.AllowedOrigins)
	limit := func(next http.Handler) http.Handler { return next }

	if opts.RateLimiter != nil {
		limit = middleware.RateLimit(opts.RateLimiter)
	}

	guard := func(next http.Handler) http.Handler { return cors(limit(next)) }

	categoryHandler := handlers.NewCategoryHandler(svc.Category, store, opts.MaxUploadBytes)
	productHandler := handlers.NewProductHandler(svc.Product, store, opts.MaxUploadBytes, opts.LowStockThreshold)
	userHandler := handlers.NewUserHandler(svc.User, opts.MaxUploadBytes)
	uploadHandler := handlers.NewUploadHandler(store)

	// REST
	mux.Handle("GET /api/category", guard(categoryHandler.ListCategories()))
	mux.Handle("GET /api/category/{id}", guard(categoryHandler.GetCategory()))
	mux.Handle("POST /api/category", guard(categoryHandler.CreateCategory()))
	mux.Handle("PUT /api/category/{id}", guard(categoryHandler.UpdateCategory()))
	mux.Handle("DELETE /api/category/{id}", guard(categoryHandler.DeleteCategory()))

	mux.Handle("GET /api/product", guard(productHandler.ListProducts()))
	mux.Handle("GET /api/product/{id}", guard(productHandler.GetProduct()))
	mux.Handle("POST /api/product", guard(productHandler.CreateProduct()))
	mux.Handle("PUT /api/product/{id}", guard(productHandler.UpdateProduct()))
	mux.Handle("DELETE /api/product/{id}", guard(productHandler.DeleteProduct()))
	mux.Handle("GET /api/product/sorted-by-price", guard(productHandler.ListProductsSortedByPrice()))
	mux.Handle("GET /api/product/category/{categoryId}", guard(productHandler.ListProductsByCategory()))
	mux.Handle("GET /api/product/user/{userId}", guard(productHandler.ListProductsByUser()))
	mux.Handle("GET /api/product/price-range", guard(productHandler.ListProductsByPriceRange()))
	mux.Handle("GET /api/product/out-of-stock", guard(productHandler.ListOutOfStockProducts()))
	mux.Handle("GET /api/product/low-stock", guard(productHandler.ListLowStockProducts()))
	mux.Handle("GET /api/product/discounted", guard(productHandler.ListDiscountedProducts()))

	mux.Handle("GET /api/user", guard(userHandler.ListUsers()))
	mux.Handle("GET /api/user/{id}", guard(userHandler.GetUser()))
	mux.Handle("POST /api/user", guard(userHandler.CreateUser()))
	mux.Handle("PUT /api/user/{id}", guard(userHandler.UpdateUser()))
	mux.Handle("DELETE /api/user/{id}", guard(userHandler.DeleteUser()))

	// rs/cors answers preflight requests itself
	mux.Handle("OPTIONS /api/", cors(http.NotFoundHandler()))
	mux.Handle("OPTIONS /graphql", cors(http.NotFoundHandler()))

	// GraphQL
	schema, err := graph.NewResolver(svc.Category, svc.Product, svc.User).Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	graphHandler := graph.NewHandler(schema)
	mux.Handle("POST /graphql", guard(graphHandler.Execute()))
	mux.Handle("GET /graphql", guard(graphHandler.Execute()))

	// Pages
	pages, err := web.NewHandler(svc.Category, svc.Product, svc.User, store, web.Config{
		MaxUploadBytes:    opts.MaxUploadBytes,
		LowStockThreshold: opts.LowStockThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	pages.Register(mux)

	// Files and ops
	mux.HandleFunc("GET /uploads/{filename}", uploadHandler.ServeUpload())
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.Health != nil {
		mux.Handle("GET /health", opts.Health)
	}

	// Middleware chaining
	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.Recovery(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, opts.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return handler, nil
}
