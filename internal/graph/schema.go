// Package graph exposes the catalog services as a GraphQL schema.
package graph

import (
	"github.com/graphql-go/graphql"

	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
)

type Resolver struct {
	categoryService service.CategoryService
	productService  service.ProductService
	userService     service.UserService
}

func NewResolver(categoryService service.CategoryService, productService service.ProductService, userService service.UserService) *Resolver {
	return &Resolver{
		categoryService: categoryService,
		productService:  productService,
		userService:     userService,
	}
}

// Schema builds the query and mutation roots over the resolver.
func (r *Resolver) Schema() (graphql.Schema, error) {
	category := r.categoryType()
	user := r.userType(category)
	product := r.productType(category, user)

	idArg := func(name string) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		}
	}

	withInput := func(input *graphql.InputObject, withID bool) graphql.FieldConfigArgument {
		args := graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
		if withID {
			args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
		}

		return args
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAllProducts": &graphql.Field{
				Type:    graphql.NewList(product),
				Resolve: r.getAllProducts,
			},
			"getProduct": &graphql.Field{
				Type:    product,
				Args:    idArg("id"),
				Resolve: r.getProduct,
			},
			"getProductsByCategory": &graphql.Field{
				Type:    graphql.NewList(product),
				Args:    idArg("categoryId"),
				Resolve: r.getProductsByCategory,
			},
			"getProductsSortedByPrice": &graphql.Field{
				Type:    graphql.NewList(product),
				Resolve: r.getProductsSortedByPrice,
			},
			"getProductsByPriceRange": &graphql.Field{
				Type: graphql.NewList(product),
				Args: graphql.FieldConfigArgument{
					"minPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: r.getProductsByPriceRange,
			},
			"getProductsByUser": &graphql.Field{
				Type:    graphql.NewList(product),
				Args:    idArg("userId"),
				Resolve: r.getProductsByUser,
			},
			"getAllCategories": &graphql.Field{
				Type:    graphql.NewList(category),
				Resolve: r.getAllCategories,
			},
			"getAllCategoriesSorted": &graphql.Field{
				Type: graphql.NewList(category),
				Args: graphql.FieldConfigArgument{
					"sortBy":        &graphql.ArgumentConfig{Type: graphql.String},
					"sortDirection": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.getAllCategoriesSorted,
			},
			"getCategory": &graphql.Field{
				Type:    category,
				Args:    idArg("id"),
				Resolve: r.getCategory,
			},
			"getAllUsers": &graphql.Field{
				Type:    graphql.NewList(user),
				Resolve: r.getAllUsers,
			},
			"getUser": &graphql.Field{
				Type:    user,
				Args:    idArg("id"),
				Resolve: r.getUser,
			},
			"getUserByEmail": &graphql.Field{
				Type: user,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.getUserByEmail,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCategory": &graphql.Field{Type: category, Args: withInput(categoryInputType, false), Resolve: r.createCategory},
			"updateCategory": &graphql.Field{Type: category, Args: withInput(categoryInputType, true), Resolve: r.updateCategory},
			"deleteCategory": &graphql.Field{Type: graphql.Boolean, Args: idArg("id"), Resolve: r.deleteCategory},
			"createProduct":  &graphql.Field{Type: product, Args: withInput(productInputType, false), Resolve: r.createProduct},
			"updateProduct":  &graphql.Field{Type: product, Args: withInput(productInputType, true), Resolve: r.updateProduct},
			"deleteProduct":  &graphql.Field{Type: graphql.Boolean, Args: idArg("id"), Resolve: r.deleteProduct},
			"createUser":     &graphql.Field{Type: user, Args: withInput(userInputType, false), Resolve: r.createUser},
			"updateUser":     &graphql.Field{Type: user, Args: withInput(userInputType, true), Resolve: r.updateUser},
			"deleteUser":     &graphql.Field{Type: graphql.Boolean, Args: idArg("id"), Resolve: r.deleteUser},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
