package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
)

// Input objects arrive as maps whose values are already coerced to the
// declared scalar: string for String and ID, int for Int, float64 for Float.
// Keys that were omitted or sent as null are absent.

func inputMap(p graphql.ResolveParams) map[string]any {
	m, _ := p.Args["input"].(map[string]any)
	if m == nil {
		return map[string]any{}
	}

	return m
}

func stringField(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}

	return nil
}

func intField(m map[string]any, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}

	return nil
}

func boolField(m map[string]any, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}

	return nil
}

func decimalField(m map[string]any, key string) *decimal.Decimal {
	switch v := m[key].(type) {
	case float64:
		d := decimal.NewFromFloat(v)
		return &d
	case int:
		d := decimal.NewFromInt(int64(v))
		return &d
	}

	return nil
}

func idField(m map[string]any, key string) (*int64, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}

	id, err := parseID(raw, key)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func categoryInput(m map[string]any) *models.CategoryInput {
	return &models.CategoryInput{
		Name:      stringField(m, "name"),
		Images:    stringField(m, "images"),
		SortOrder: intField(m, "sortOrder"),
	}
}

func productInput(m map[string]any) (*models.ProductInput, error) {
	userID, err := idField(m, "userId")
	if err != nil {
		return nil, err
	}

	categoryID, err := idField(m, "categoryId")
	if err != nil {
		return nil, err
	}

	return &models.ProductInput{
		Title:       stringField(m, "title"),
		Quantity:    intField(m, "quantity"),
		Description: stringField(m, "description"),
		Price:       decimalField(m, "price"),
		Discount:    intField(m, "discount"),
		Status:      boolField(m, "status"),
		Images:      stringField(m, "images"),
		UserID:      userID,
		CategoryID:  categoryID,
	}, nil
}

func userInput(m map[string]any) (*models.UserInput, error) {
	input := &models.UserInput{
		Fullname: stringField(m, "fullname"),
		Email:    stringField(m, "email"),
		Password: stringField(m, "password"),
		Phone:    stringField(m, "phone"),
	}

	raw, ok := m["categoryIds"].([]any)
	if !ok {
		return input, nil
	}

	ids := make([]int64, 0, len(raw))

	for _, item := range raw {
		if item == nil {
			continue
		}

		id, err := parseID(item, "categoryIds")
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	input.CategoryIDs = &ids

	return input, nil
}
