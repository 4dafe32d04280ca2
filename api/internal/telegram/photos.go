package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"math-proxy/api/internal/ocr"
	"math-proxy/api/internal/pipeline"
)

func (r *Router) acceptPhoto(cid int64, msg tgbotapi.Message) {
	r.send(cid, "Принял фото, обрабатываю…")

	// Телеграм присылает несколько размеров; берём самый крупный.
	ph := msg.Photo[len(msg.Photo)-1]
	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.SendError(cid, fmt.Errorf("не смог получить файл: %w", err))
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, tf.FilePath)
	raw, err := download(url)
	if err != nil {
		r.SendError(cid, fmt.Errorf("не смог скачать фото: %w", err))
		return
	}

	engine, err := r.pickEngine(cid)
	if err != nil {
		r.SendError(cid, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	res, err := pipeline.New(engine).Solve(ctx, raw)
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.sendResult(cid, res)
}

func (r *Router) sendResult(cid int64, res ocr.SolveResult) {
	var b strings.Builder
	if res.Latex != "" {
		b.WriteString("📝 LaTeX: " + res.Latex + "\n\n")
	}
	for i, s := range res.Steps {
		fmt.Fprintf(&b, "%d. %s", i+1, s.Step)
		if s.Detail != "" {
			b.WriteString(": " + s.Detail)
		}
		b.WriteByte('\n')
	}
	if res.Note != "" {
		b.WriteString("\n⚠️ " + res.Note)
	}

	text := b.String()
	if len(text) > 3900 {
		text = text[:3900] + "…"
	}
	r.send(cid, text)
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
