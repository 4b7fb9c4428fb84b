package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type parseWishRequest struct {
	Text string `json:"text"`
}

// handleParseWishes turns free text into a structured wish. The only client
// error is a missing text field; once parsing starts, the response is always
// 200 with a usable wish, degraded or not.
func (s *Server) handleParseWishes(w http.ResponseWriter, r *http.Request) {
	var req parseWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON object with a text field")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "missing_text", "text is required")
		return
	}

	wish := s.parser.Parse(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, wish)
}
