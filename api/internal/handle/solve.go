package handle

import (
	"context"
	"log"
	"net/http"
)

// Solve: POST /solve, multipart-поле "file" →
// {"latex": "...", "steps": [{"step","detail"}...], "note"?: "..."}.
func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	h.addCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	log.Printf("received /solve request")

	raw, err := readUpload(r)
	if err != nil {
		writeError(w, "bad upload: "+err.Error())
		return
	}
	s, err := h.solver(r)
	if err != nil {
		writeError(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deadline(r))
	defer cancel()

	res, err := s.Solve(ctx, raw)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	log.Printf("solve: latex=%q steps=%d note=%q", res.Latex, len(res.Steps), res.Note)
	writeJSON(w, http.StatusOK, res)
}
