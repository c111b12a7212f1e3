// Package response renders the charm API's JSON response envelope.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/lxc/incus/v6/shared/api"
)

// Response represents an API response.
type Response interface {
	Render(w http.ResponseWriter) error
	Code() int
}

// Sync response.
type syncResponse struct {
	metadata any
}

// SyncResponse returns a successful response carrying the given metadata.
func SyncResponse(metadata any) Response {
	return &syncResponse{metadata: metadata}
}

func (r *syncResponse) Render(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := api.ResponseRaw{
		Type:       api.SyncResponse,
		Status:     api.Success.String(),
		StatusCode: int(api.Success),
		Metadata:   r.metadata,
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(resp)
}

// Code returns the HTTP code.
func (*syncResponse) Code() int {
	return http.StatusOK
}

// Error response.
type errorResponse struct {
	code int
	msg  string
}

// ErrorResponse returns an error response with the given code and msg.
func ErrorResponse(code int, msg string) Response {
	return &errorResponse{code: code, msg: msg}
}

// NotFound returns a not found response (404).
func NotFound() Response {
	return &errorResponse{code: http.StatusNotFound, msg: "not found"}
}

// InternalError returns an internal error response (500) with the given error.
func InternalError(err error) Response {
	return &errorResponse{code: http.StatusInternalServerError, msg: err.Error()}
}

func (r *errorResponse) Render(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.code)

	resp := api.ResponseRaw{
		Type:  api.ErrorResponse,
		Error: r.msg,
		Code:  r.code,
	}

	return json.NewEncoder(w).Encode(resp)
}

// Code returns the HTTP code.
func (r *errorResponse) Code() int {
	return r.code
}
