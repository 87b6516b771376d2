package graph

import (
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/graphql-go/graphql"
)

func (r *Resolver) categoryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"images":    &graphql.Field{Type: graphql.String},
			"sortOrder": &graphql.Field{Type: graphql.Int},
		},
	})
}

func (r *Resolver) userType(category *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"fullname":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":      &graphql.Field{Type: graphql.String},
			"categories": &graphql.Field{Type: graphql.NewList(category)},
		},
	})
}

func (r *Resolver) productType(category, user *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"quantity":    &graphql.Field{Type: graphql.Int},
			"description": &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*models.Product).Price.InexactFloat64(), nil
				},
			},
			"discountedPrice": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*models.Product).DiscountedPrice().InexactFloat64(), nil
				},
			},
			"discount": &graphql.Field{Type: graphql.Int},
			"status":   &graphql.Field{Type: graphql.Boolean},
			"images":   &graphql.Field{Type: graphql.String},
			"createDate": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					created := p.Source.(*models.Product).CreateDate
					if created.IsZero() {
						return nil, nil
					}

					return created.Format(time.RFC3339), nil
				},
			},
			"userName":     &graphql.Field{Type: graphql.String},
			"categoryName": &graphql.Field{Type: graphql.String},
			"user": &graphql.Field{
				Type:    user,
				Resolve: r.productUser,
			},
			"category": &graphql.Field{
				Type:    category,
				Resolve: r.productCategory,
			},
		},
	})
}

var categoryInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CategoryInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"images":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"sortOrder": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"quantity":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"discount":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"status":      &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"images":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"userId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
	},
})

var userInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"fullname":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"phone":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"categoryIds": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
	},
})
