package graph

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

// resolverError carries the AppError code and field into the "extensions"
// member of a GraphQL error.
type resolverError struct {
	*appErrors.AppError
}

func (e resolverError) Extensions() map[string]any {
	ext := map[string]any{"code": e.Code}
	if e.Field != "" {
		ext["field"] = e.Field
	}

	return ext
}

func toGraphError(err error) error {
	if appErr, ok := appErrors.IsAppError(err); ok {
		return resolverError{appErr}
	}

	return err
}

func parseID(raw any, name string) (int64, error) {
	s, _ := raw.(string)

	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, toGraphError(appErrors.FieldError(name, "ID không hợp lệ: "+s).WithError(err))
	}

	return id, nil
}

func argID(p graphql.ResolveParams, name string) (int64, error) {
	return parseID(p.Args[name], name)
}

// nullIfNotFound maps a lookup miss to a null result, the way single-entity
// queries answer for an unknown id.
func nullIfNotFound(err error) (any, error) {
	if appErrors.IsNotFound(err) {
		return nil, nil
	}

	return nil, toGraphError(err)
}

func listResult[T any](v []T, err error) (any, error) {
	if err != nil {
		return nil, toGraphError(err)
	}

	return v, nil
}

func (r *Resolver) getAllProducts(p graphql.ResolveParams) (any, error) {
	return listResult(r.productService.FindAll(p.Context))
}

func (r *Resolver) getProduct(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	product, err := r.productService.FindByID(p.Context, id)
	if err != nil {
		return nullIfNotFound(err)
	}

	return product, nil
}

// getProductsByCategory answers an unknown category with an empty list.
func (r *Resolver) getProductsByCategory(p graphql.ResolveParams) (any, error) {
	categoryID, err := argID(p, "categoryId")
	if err != nil {
		return nil, err
	}

	exists, err := r.categoryService.ExistsByID(p.Context, categoryID)
	if err != nil {
		return nil, toGraphError(err)
	}

	if !exists {
		return []*models.Product{}, nil
	}

	return listResult(r.productService.FindByCategoryID(p.Context, categoryID))
}

func (r *Resolver) getProductsSortedByPrice(p graphql.ResolveParams) (any, error) {
	return listResult(r.productService.FindAllOrderByPriceAsc(p.Context))
}

func (r *Resolver) getProductsByPriceRange(p graphql.ResolveParams) (any, error) {
	minPrice, _ := p.Args["minPrice"].(float64)
	maxPrice, _ := p.Args["maxPrice"].(float64)

	return listResult(r.productService.FindByPriceRange(p.Context, decimal.NewFromFloat(minPrice), decimal.NewFromFloat(maxPrice)))
}

func (r *Resolver) getProductsByUser(p graphql.ResolveParams) (any, error) {
	userID, err := argID(p, "userId")
	if err != nil {
		return nil, err
	}

	return listResult(r.productService.FindByUserID(p.Context, userID))
}

func (r *Resolver) getAllCategories(p graphql.ResolveParams) (any, error) {
	return listResult(r.categoryService.FindAll(p.Context))
}

func (r *Resolver) getAllCategoriesSorted(p graphql.ResolveParams) (any, error) {
	sortBy, _ := p.Args["sortBy"].(string)
	if strings.TrimSpace(sortBy) == "" {
		sortBy = "id"
	}

	direction, _ := p.Args["sortDirection"].(string)

	return listResult(r.categoryService.FindAllSorted(p.Context, sortBy, models.ParseDirection(direction)))
}

func (r *Resolver) getCategory(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	category, err := r.categoryService.FindByID(p.Context, id)
	if err != nil {
		return nullIfNotFound(err)
	}

	return category, nil
}

func (r *Resolver) getAllUsers(p graphql.ResolveParams) (any, error) {
	return listResult(r.userService.FindAll(p.Context))
}

func (r *Resolver) getUser(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	user, err := r.userService.FindByID(p.Context, id)
	if err != nil {
		return nullIfNotFound(err)
	}

	return user, nil
}

func (r *Resolver) getUserByEmail(p graphql.ResolveParams) (any, error) {
	email, _ := p.Args["email"].(string)

	user, err := r.userService.FindByEmail(p.Context, email)
	if err != nil {
		return nullIfNotFound(err)
	}

	return user, nil
}

func (r *Resolver) productUser(p graphql.ResolveParams) (any, error) {
	product := p.Source.(*models.Product)

	user, err := r.userService.FindByID(p.Context, product.UserID)
	if err != nil {
		return nullIfNotFound(err)
	}

	return user, nil
}

func (r *Resolver) productCategory(p graphql.ResolveParams) (any, error) {
	product := p.Source.(*models.Product)
	if product.CategoryID == nil {
		return nil, nil
	}

	category, err := r.categoryService.FindByID(p.Context, *product.CategoryID)
	if err != nil {
		return nullIfNotFound(err)
	}

	return category, nil
}

func (r *Resolver) createCategory(p graphql.ResolveParams) (any, error) {
	category, err := r.categoryService.Create(p.Context, categoryInput(inputMap(p)))
	if err != nil {
		return nil, toGraphError(err)
	}

	return category, nil
}

func (r *Resolver) updateCategory(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	category, err := r.categoryService.UpdateByID(p.Context, id, categoryInput(inputMap(p)))
	if err != nil {
		return nil, toGraphError(err)
	}

	return category, nil
}

func (r *Resolver) createProduct(p graphql.ResolveParams) (any, error) {
	input, err := productInput(inputMap(p))
	if err != nil {
		return nil, err
	}

	product, err := r.productService.Create(p.Context, input)
	if err != nil {
		return nil, toGraphError(err)
	}

	return product, nil
}

func (r *Resolver) updateProduct(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	input, err := productInput(inputMap(p))
	if err != nil {
		return nil, err
	}

	product, err := r.productService.UpdateByID(p.Context, id, input)
	if err != nil {
		return nil, toGraphError(err)
	}

	return product, nil
}

func (r *Resolver) createUser(p graphql.ResolveParams) (any, error) {
	input, err := userInput(inputMap(p))
	if err != nil {
		return nil, err
	}

	user, err := r.userService.Create(p.Context, input)
	if err != nil {
		return nil, toGraphError(err)
	}

	return user, nil
}

func (r *Resolver) updateUser(p graphql.ResolveParams) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	input, err := userInput(inputMap(p))
	if err != nil {
		return nil, err
	}

	user, err := r.userService.UpdateByID(p.Context, id, input)
	if err != nil {
		return nil, toGraphError(err)
	}

	return user, nil
}

func (r *Resolver) deleteCategory(p graphql.ResolveParams) (any, error) {
	return r.delete(p, "category", r.categoryService.DeleteByID)
}

func (r *Resolver) deleteProduct(p graphql.ResolveParams) (any, error) {
	return r.delete(p, "product", r.productService.DeleteByID)
}

func (r *Resolver) deleteUser(p graphql.ResolveParams) (any, error) {
	return r.delete(p, "user", r.userService.DeleteByID)
}

// delete answers false instead of an error when the service fails; an
// unparsable id is still an error.
func (r *Resolver) delete(p graphql.ResolveParams, entity string, deleteByID func(context.Context, int64) error) (any, error) {
	id, err := argID(p, "id")
	if err != nil {
		return nil, err
	}

	if err := deleteByID(p.Context, id); err != nil {
		middleware.LoggerFromContext(p.Context).Error("GraphQL delete failed",
			slog.String("entity", entity),
			slog.Int64("id", id),
			slog.Any("error", err),
		)

		return false, nil
	}

	return true, nil
}
