package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// ResponseJSON writes the envelope with a custom status code. An empty errMsg
// leaves the error field null.
func ResponseJSON(w http.ResponseWriter, code int, success bool, data any, errMsg string) {
	response := Response{
		Success: success,
		Data:    data,
	}
	if errMsg != "" {
		response.Error = &errMsg
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, true, data, "")
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, true, data, "")
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusBadRequest, false, nil, message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, nil, message)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, false, nil, message)
}

// returns 503 Service Unavailable
func ResponseUnavailable(w http.ResponseWriter, data any, message string) {
	ResponseJSON(w, http.StatusServiceUnavailable, false, data, message)
}
