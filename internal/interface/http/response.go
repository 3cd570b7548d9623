package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the single error envelope every endpoint returns; the
// error_code values are the taxonomy constants declared in server.go.
type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, ErrorCode: code})
}

// writeJSON serializes body as the response. An encode failure after the
// header is written cannot be reported to the client, so it is dropped.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
