package common

import (
	"encoding/json"
	"net/http"
)

// Flash categories shown to the user alongside mutation results.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// Flash pairs a human-readable status message with its category.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message, Category: flashCategoryForStatus(code)})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func flashCategoryForStatus(code int) string {
	switch {
	case code == http.StatusForbidden:
		return FlashWarning
	case code >= 400:
		return FlashDanger
	default:
		return FlashInfo
	}
}
