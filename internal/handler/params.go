package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// bindPath binds the chi URL parameter name into dst.
// On failure it writes a 422 and returns false.
func bindPath(w http.ResponseWriter, r *http.Request, name string, dst *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dst,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, fmt.Sprintf("invalid format for parameter %s: %s", name, err))
		return false
	}
	return true
}

// bindQuery binds an optional form-style query parameter into dst, which must
// be a pointer to a pointer so absence can be told apart from a zero value.
func bindQuery(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		requestError(w, fmt.Sprintf("invalid format for parameter %s: %s", name, err))
		return false
	}
	return true
}

// decodeBody decodes the JSON request body into dst. An empty body is an
// error unless optional is set, in which case dst is left untouched.
// On failure it writes the response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
	case errors.Is(err, io.EOF):
		if optional {
			return true
		}
		requestError(w, "request body is required")
	default:
		requestError(w, "invalid request body: "+err.Error())
	}
	return false
}
