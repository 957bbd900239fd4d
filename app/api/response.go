// Package api holds the JSON plumbing shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// MsgInvalidJSON and MsgInvalidID are returned for unreadable requests.
const (
	MsgInvalidJSON = "Invalid JSON body"
	MsgInvalidID   = "Invalid id"
)

type errorBody struct {
	Error string `json:"error"`
}

// OKResponse writes data as JSON with the given status.
func OKResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	OKResponse(w, status, errorBody{Error: message})
}

// NoContent answers 204 without a body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// PathID reads the positive integer {id} path parameter.
func PathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DecodeJSON reads the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
