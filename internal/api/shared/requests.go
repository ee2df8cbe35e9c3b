package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into v. Unknown fields are rejected so
// a body that slipped past schema validation cannot smuggle extra keys.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
