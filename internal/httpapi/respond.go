package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
)

// envelope is the JSON body of every REST response. Failures carry only
// success=false and a message.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// writeError translates an error returned by the Connect services into an
// HTTP status and message.
func writeError(w http.ResponseWriter, err error) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		writeFailure(w, http.StatusInternalServerError, "Server error")
		return
	}

	switch connectErr.Code() {
	case connect.CodeInvalidArgument, connect.CodeAlreadyExists:
		writeFailure(w, http.StatusBadRequest, connectErr.Message())
	case connect.CodeUnauthenticated:
		writeFailure(w, http.StatusUnauthorized, connectErr.Message())
	case connect.CodeNotFound:
		writeFailure(w, http.StatusNotFound, connectErr.Message())
	default:
		writeFailure(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
