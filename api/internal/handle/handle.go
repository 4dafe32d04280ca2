package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/pipeline"
)

// Максимальный размер загружаемой картинки.
const maxFileSize = 5 * 1024 * 1024

type Handle struct {
	engs *ocr.Engines

	// Разрешённый origin для CORS.
	allowOrigin string

	// Дедлайн запроса по умолчанию.
	timeout time.Duration
}

func New(engs *ocr.Engines, allowOrigin string, timeout time.Duration) *Handle {
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &Handle{
		engs:        engs,
		allowOrigin: allowOrigin,
		timeout:     timeout,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError — ошибка в теле при HTTP 200: исходный сервис никогда не
// поднимал статус выше транспортного уровня, фронтенд разбирает только тело.
func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"error": msg})
}

func (h *Handle) addCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", h.allowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
}

// deadline отдаёт таймаут запроса: заголовок X-Request-Timeout, затем
// query-параметр timeoutSec, затем значение из конфигурации.
func (h *Handle) deadline(r *http.Request) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return h.timeout
}

// readUpload достаёт байты картинки из multipart-поля "file".
func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxFileSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxFileSize))
}

// solver выбирает движок по form-полю llm_name (пусто — gemini).
func (h *Handle) solver(r *http.Request) (*pipeline.Solver, error) {
	engine, err := h.engs.GetEngine(r.FormValue("llm_name"))
	if err != nil {
		return nil, err
	}
	return pipeline.New(engine), nil
}
