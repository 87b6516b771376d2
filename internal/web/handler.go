// Package web serves the server-rendered admin pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"dashboard",
	"categories_list", "categories_form", "categories_view",
	"products_list", "products_form", "products_view",
	"users_list", "users_form", "users_view",
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}

		return t.Format("02/01/2006 15:04")
	},
	"add": func(a, b int) int { return a + b },
	"deref": func(p *int64) int64 {
		if p == nil {
			return 0
		}

		return *p
	},
}

type Config struct {
	MaxUploadBytes    int64
	LowStockThreshold int
}

type Handler struct {
	categoryService service.CategoryService
	productService  service.ProductService
	userService     service.UserService
	storage         storage.Storage
	cfg             Config
	pages           map[string]*template.Template
}

func NewHandler(categoryService service.CategoryService, productService service.ProductService, userService service.UserService, store storage.Storage, cfg Config) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}

		pages[name] = tmpl
	}

	return &Handler{
		categoryService: categoryService,
		productService:  productService,
		userService:     userService,
		storage:         store,
		cfg:             cfg,
		pages:           pages,
	}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /{$}", http.RedirectHandler("/categories", http.StatusFound))
	mux.Handle("GET /admin", http.RedirectHandler("/admin/dashboard", http.StatusFound))
	mux.HandleFunc("GET /admin/dashboard", h.Dashboard())

	mux.HandleFunc("GET /categories", h.ListCategories())
	mux.Handle("GET /categories/{$}", http.RedirectHandler("/categories", http.StatusFound))
	mux.HandleFunc("GET /categories/new", h.NewCategory())
	mux.HandleFunc("GET /categories/edit/{id}", h.EditCategory())
	mux.HandleFunc("GET /categories/view/{id}", h.ViewCategory())
	mux.HandleFunc("POST /categories/save", h.SaveCategory())
	mux.HandleFunc("POST /categories/delete/{id}", h.DeleteCategory())

	mux.HandleFunc("GET /products", h.ListProducts())
	mux.Handle("GET /products/{$}", http.RedirectHandler("/products", http.StatusFound))
	mux.HandleFunc("GET /products/new", h.NewProduct())
	mux.HandleFunc("GET /products/edit/{id}", h.EditProduct())
	mux.HandleFunc("GET /products/view/{id}", h.ViewProduct())
	mux.HandleFunc("POST /products/save", h.SaveProduct())
	mux.HandleFunc("POST /products/delete/{id}", h.DeleteProduct())

	mux.HandleFunc("GET /users", h.ListUsers())
	mux.Handle("GET /users/{$}", http.RedirectHandler("/users", http.StatusFound))
	mux.HandleFunc("GET /users/new", h.NewUser())
	mux.HandleFunc("GET /users/edit/{id}", h.EditUser())
	mux.HandleFunc("GET /users/view/{id}", h.ViewUser())
	mux.HandleFunc("POST /users/save", h.SaveUser())
	mux.HandleFunc("POST /users/delete/{id}", h.DeleteUser())
}

// page is what every template receives; Data holds the page specific view.
type page struct {
	Title  string
	Active string
	Flash  *Flash
	Data   any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	logger := middleware.LoggerFromContext(r.Context())

	if p.Flash == nil {
		p.Flash = popFlash(w, r)
	}

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		logger.Error("Failed to render page", slog.String("page", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect answers a POST or a failed lookup with 303 and an optional flash.
func redirect(w http.ResponseWriter, r *http.Request, target string, flash *Flash) {
	if flash != nil {
		setFlash(w, *flash)
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
