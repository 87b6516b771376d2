package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Execute godoc
//
//	@Summary		Execute a GraphQL operation
//	@Description	Accepts {query, variables, operationName}. GET requests may pass query as a URL parameter.
//	@Tags			GraphQL
//	@Accept			json
//	@Produce		json
//	@Param			request	body		Request	true	"GraphQL request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	map[string]any
//	@Router			/graphql [post]
func (h *Handler) Execute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req Request

		if r.Method == http.MethodGet {
			q := r.URL.Query()
			req.Query = q.Get("query")
			req.OperationName = q.Get("operationName")

			if raw := q.Get("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					writeRequestError(w, "Invalid variables: "+err.Error())
					return
				}
			}
		} else if err := utils.DecodeJSONBody(r, &req); err != nil {
			writeRequestError(w, err.Error())
			return
		}

		if req.Query == "" {
			writeRequestError(w, "Must provide query string")
			return
		}

		if r.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
			w.Header().Set("Allow", http.MethodPost)
			response.WriteJson(w, http.StatusMethodNotAllowed, graphql.Result{
				Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError("Mutations must be sent with POST")},
			})

			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         h.schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})

		if result.HasErrors() {
			logger.Warn("GraphQL operation returned errors",
				slog.String("operation", req.OperationName),
				slog.Any("errors", result.Errors),
			)
		}

		response.WriteJson(w, http.StatusOK, result)
	}
}

// isMutation reports whether the operation that would run is a mutation.
// Unparseable documents are left to graphql.Do to report.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.Operation != ast.OperationTypeMutation {
			continue
		}

		if operationName == "" || (op.Name != nil && op.Name.Value == operationName) {
			return true
		}
	}

	return false
}

func writeRequestError(w http.ResponseWriter, message string) {
	response.WriteJson(w, http.StatusBadRequest, graphql.Result{
		Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError(message)},
	})
}
