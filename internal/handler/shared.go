package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// GenericResponse is a standard API response structure
type GenericResponse struct {
	Body    any    `json:"body,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// responseCallback is a function type for error handling callbacks
type responseCallback func()

// parseBodyAndHandleError parses the request body and handles errors. An
// empty body is accepted when requireBody is false.
func parseBodyAndHandleError(writer http.ResponseWriter, request *http.Request, target any, requireBody bool) (responseCallback, error) {
	if !requireBody && request.ContentLength == 0 {
		return func() {}, nil
	}

	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		if !requireBody && errors.Is(err, io.EOF) {
			return func() {}, nil
		}
		return func() {
			writeResult(writer, http.StatusBadRequest, GenericResponse{
				Body:    nil,
				Message: "invalid request body",
				Error:   err.Error(),
			})
		}, err
	}
	return func() {}, nil
}

// writeResult writes a JSON response with the given status code
func writeResult(writer http.ResponseWriter, statusCode int, response GenericResponse) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	json.NewEncoder(writer).Encode(response)
}

// writeBytes writes raw bytes with the given status code and content type
func writeBytes(writer http.ResponseWriter, statusCode int, contentType string, data []byte) {
	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(statusCode)
	writer.Write(data)
}
