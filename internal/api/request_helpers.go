package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/redact"
)

// MsgInvalidRequestFormat is returned when a validated body still cannot be
// decoded into the handler's request type.
const MsgInvalidRequestFormat = "Invalid request format"

// pathID returns the {id} URL parameter. Routes that carry it are validated
// before the handler runs, so it is never empty there.
func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeRequest decodes the body into v. On failure it writes a 400 response
// and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidRequestFormat)
		return false
	}
	return true
}
