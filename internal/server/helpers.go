package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/spellcoach/spellcoach/internal/word"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, word.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "word not found"})
	case errors.Is(err, word.ErrDuplicateText):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "word already exists"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func parseLimitParam(r *http.Request, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("limit"))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return parsed, nil
}

// normalizeWordText lowercases and trims a word as stored in the word table.
func normalizeWordText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
