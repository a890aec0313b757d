package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgServerError       = "Server error"
	msgProductNotFound   = "Product not found"
	msgInvalidBody       = "Invalid request body"
	msgNoToken           = "No token, authorization denied"
	msgInvalidToken      = "Token is not valid"
	msgUserExists        = "User already exists"
	msgInvalidCredential = "Invalid credentials"
	msgUserNotFound      = "User not found"
	msgStorageDisabled   = "Image uploads are not configured"

	maxBodyBytes = 1 << 20
)

// messageBody is the product routes' error shape.
type messageBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// msgBody is the auth routes' error shape.
type msgBody struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, messageBody{Message: msg})
}

func writeMsg(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, msgBody{Msg: msg})
}

// decodeBody reads a single JSON value of at most maxBodyBytes into v. An
// empty body leaves v zero so field validation reports what is missing.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
