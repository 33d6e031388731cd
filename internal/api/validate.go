package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// RequestValidator rejects requests whose parameters or body do not match the
// OpenAPI document. Operations named in skip, and paths the document does not
// describe, pass through unchecked. The document's servers are cleared so that
// routes match on path alone.
func RequestValidator(doc *openapi3.T, skip ...string) (func(http.Handler) http.Handler, error) {
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	skipped := make(map[string]struct{}, len(skip))
	for _, op := range skip {
		skipped[op] = struct{}{}
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				// unknown routes and methods are the router's business
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := skipped[route.Operation.OperationID]; ok {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeValidationError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	//nolint:errcheck // best effort response writing
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   ErrorCodeValidationError,
		Message: describeValidationError(err),
	})
}

func describeValidationError(err error) string {
	switch e := err.(type) {
	case openapi3.MultiError:
		msgs := make([]string, 0, len(e))
		for _, inner := range e {
			msgs = append(msgs, describeValidationError(inner))
		}
		return strings.Join(msgs, "; ")
	case *openapi3.SchemaError:
		if field := strings.Join(e.JSONPointer(), "."); field != "" {
			return field + ": " + e.Reason
		}
		return e.Reason
	case *openapi3filter.RequestError:
		msg := e.Reason
		if e.Err != nil {
			msg = describeValidationError(e.Err)
		}
		if e.Parameter != nil {
			return e.Parameter.Name + ": " + msg
		}
		return msg
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return describeValidationError(reqErr)
	}
	return err.Error()
}
