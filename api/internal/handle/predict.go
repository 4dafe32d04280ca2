package handle

import (
	"context"
	"log"
	"net/http"
)

// Predict: POST /predict/, multipart-поле "file" → {"latex": "..."}.
// Пустой latex — не ошибка: означает «транскрипция недоступна».
func (h *Handle) Predict(w http.ResponseWriter, r *http.Request) {
	h.addCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	log.Printf("received /predict request")

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

	latex, err := s.Predict(ctx, raw)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	log.Printf("prediction result: %q", latex)
	writeJSON(w, http.StatusOK, map[string]string{"latex": latex})
}
