package gql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
)

// Request is a GraphQL HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Response is a GraphQL HTTP response body.
type Response struct {
	Data   any     `json:"data,omitempty"`
	Errors []Error `json:"errors,omitempty"`
}

// Error is a single GraphQL error message.
type Error struct {
	Message string `json:"message"`
}

// Handler serves GraphQL queries over HTTP.
type Handler struct {
	schema    graphql.Schema
	schemaErr error
}

// NewHandler builds the schema once at construction.
func NewHandler(st store.Store, eng *engine.Engine) *Handler {
	schema, err := buildSchema(st, eng)
	return &Handler{schema: schema, schemaErr: err}
}

// ServeHTTP executes a GraphQL query.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.schemaErr != nil {
		http.Error(w, "schema unavailable", http.StatusInternalServerError)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	response := Response{Data: result.Data}
	if result.HasErrors() {
		response.Errors = make([]Error, len(result.Errors))
		for i, err := range result.Errors {
			response.Errors[i] = Error{Message: err.Message}
		}
	}

	json.NewEncoder(w).Encode(response)
}
