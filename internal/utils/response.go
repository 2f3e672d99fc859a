package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the failure envelope: {"error": <string or field map>}.
type ErrorBody struct {
	Error any `json:"error"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"error": body} with the given status. body is either a
// plain string or a field-keyed map of validation messages.
func JSONError(w http.ResponseWriter, status int, body any) {
	JSON(w, status, ErrorBody{Error: body})
}

// Msg is the shape of informational responses such as login/logout acks.
type Msg struct {
	Msg string `json:"msg"`
}
