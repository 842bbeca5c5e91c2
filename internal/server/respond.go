package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Status   int               `json:"status"`
	Code     string            `json:"code,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSONStatus(w, code, errorBody{
		Error:   http.StatusText(code),
		Message: msg,
		Status:  code,
	})
}

// writeAppError maps domain errors to their HTTP status. Unknown errors
// become a 500 without leaking internals.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	code := appErr.Code.HTTPStatus()
	msg := appErr.Message
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSONStatus(w, code, errorBody{
		Error:    http.StatusText(code),
		Message:  msg,
		Status:   code,
		Code:     string(appErr.Code),
		Metadata: appErr.Metadata,
	})
}
