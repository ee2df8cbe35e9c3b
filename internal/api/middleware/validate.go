package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/validation"
)

// MaxBodyBytes caps the request body read by ValidateRequest.
const MaxBodyBytes = 1 << 20

// Body failure messages reported by ValidateRequest.
const (
	MsgInvalidJSON  = "Request body must be valid JSON"
	MsgNotObject    = "Request body must be a JSON object"
	MsgBodyTooLarge = "Request body is too large"
)

// ValidateRequest checks the route's path parameters and JSON body against
// schema. On failure it responds 400 with every message joined by ", ";
// on success the original body is replayed to next.
func ValidateRequest(schema validation.RequestSchema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := make(map[string]any, len(schema.Params.Fields))
			for _, f := range schema.Params.Fields {
				if v := chi.URLParam(r, f.Name); v != "" {
					params[f.Name] = v
				}
			}
			errs := validation.Validate(schema.Params, params).Errors

			raw, values, bodyErr := readJSONObject(r.Body)
			if bodyErr != "" {
				errs = append(errs, bodyErr)
			} else {
				errs = append(errs, validation.Validate(schema.Body, values).Errors...)
			}

			if len(errs) > 0 {
				shared.RespondWithError(w, r, http.StatusBadRequest, strings.Join(errs, ", "))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r)
		})
	}
}

// readJSONObject reads at most MaxBodyBytes and decodes them as a JSON object
// with numbers kept as json.Number. An empty body decodes to an empty object.
// The returned message is non-empty when the body is unacceptable.
func readJSONObject(body io.Reader) ([]byte, map[string]any, string) {
	if body == nil {
		return nil, map[string]any{}, ""
	}

	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return nil, nil, MsgInvalidJSON
	}
	if len(raw) > MaxBodyBytes {
		return nil, nil, MsgBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return raw, map[string]any{}, ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, nil, MsgInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, nil, MsgInvalidJSON
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, nil, MsgNotObject
	}
	return raw, obj, ""
}
