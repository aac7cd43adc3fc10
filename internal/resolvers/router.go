package resolvers

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"supersimple.dev/cloud/internal/exceptions"
)

// Request is the direct-resolver event: the GraphQL field being resolved,
// its arguments as raw JSON, and the caller's identity from the user pool.
type Request struct {
	Field     string          `json:"field"`
	Arguments json.RawMessage `json:"arguments"`
	Identity  *Identity       `json:"identity"`
}

type Identity struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

// GraphQLError rides the GraphQL error channel: a machine-readable type from
// the exception taxonomy plus a human message.
type GraphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Response is what the mapping template unwraps: exactly one of Data or
// Error is populated.
type Response struct {
	Data  interface{}   `json:"data,omitempty"`
	Error *GraphQLError `json:"error,omitempty"`
}

// Handler resolves one field for an authenticated user.
type Handler func(ctx context.Context, userId string, args json.RawMessage) (interface{}, error)

// Service contributes a set of field handlers, keyed by field name.
type Service interface {
	GetHandlers() map[string]Handler
}

type Router struct {
	handlers map[string]Handler
	logger   zerolog.Logger
}

func NewRouter(logger zerolog.Logger, services ...Service) *Router {
	handlers := make(map[string]Handler)
	for _, service := range services {
		for field, handler := range service.GetHandlers() {
			handlers[field] = handler
		}
	}
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// Fields lists every registered field name, sorted.
func (r *Router) Fields() []string {
	fields := maps.Keys(r.handlers)
	slices.Sort(fields)
	return fields
}

func translateError(err error) *GraphQLError {
	if re, ok := err.(exceptions.RequestError); ok {
		return &GraphQLError{
			Type:    re.ErrorType(),
			Message: re.Error(),
		}
	}
	if se, ok := err.(*exceptions.ServiceError); ok {
		return &GraphQLError{
			Type:    se.Type,
			Message: se.Error(),
		}
	}
	// Storage errors pass through with their own message.
	return &GraphQLError{
		Type:    "InternalErrorException",
		Message: err.Error(),
	}
}

// Invoke validates the caller's identity, dispatches on field name, and
// translates failures onto the error channel. Identity comes first: nothing
// runs on behalf of an anonymous caller.
func (r *Router) Invoke(ctx context.Context, request Request) Response {
	if request.Identity == nil || request.Identity.Sub == "" {
		return Response{Error: translateError(exceptions.Unauthorized(""))}
	}
	handler, ok := r.handlers[request.Field]
	if !ok {
		return Response{Error: translateError(exceptions.NotFound("field", request.Field))}
	}
	data, err := handler(ctx, request.Identity.Sub, request.Arguments)
	if err != nil {
		gqlErr := translateError(err)
		r.logger.Warn().
			Str("field", request.Field).
			Str("errorType", gqlErr.Type).
			Str("message", gqlErr.Message).
			Msg("Field resolution failed")
		return Response{Error: gqlErr}
	}
	r.logger.Debug().
		Str("field", request.Field).
		Msg("Field resolved")
	return Response{Data: data}
}
