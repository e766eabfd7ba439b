// Package handlers contains the HTTP handlers of the public API.
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/afyabot/afyabot/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps an application error to its HTTP status via the error
// code table. Codes that resolve to 500 are masked with a generic message so
// internals never leak into API responses; other statuses (429, 503) pass
// the error message through.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status == http.StatusInternalServerError || code == errors.CodeUnknown {
		code = errors.ErrCodeInternal
		status = http.StatusInternalServerError
		message = "internal server error"
	}

	writeJSON(w, status, ErrorResponse{Code: code.String(), Message: message})
}

// decodeJSON parses the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New(errors.ErrCodeBadRequest, "invalid JSON body").WithCause(err)
	}
	return nil
}

// clientIP returns the caller's IP. The RealIP middleware has already folded
// X-Forwarded-For / X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// queryInt extracts an integer query parameter, falling back to def for
// missing or unparsable values.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
