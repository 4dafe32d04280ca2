package telegram

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"math-proxy/api/internal/ocr"
)

type Router struct {
	Bot  *tgbotapi.BotAPI
	Engs *ocr.Engines

	// Выбранный движок по чату (llm_name); пусто — gemini.
	chosen sync.Map
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(cid, upd.Message)
		return
	}

	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(cid, *upd.Message)
		return
	}

	r.send(cid, "Пришли фото примера или уравнения — верну LaTeX и решение по шагам.")
}

func (r *Router) handleCommand(cid int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(cid, "Пришли фото примера — верну распознанный LaTeX и пошаговое решение.\nКоманды: /health, /engine")
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, msg.Text)
	default:
		r.send(cid, "Неизвестная команда")
	}
}

// handleEngineCommand переключает движок для чата.
// Форматы: /engine gemini | /engine gpt
func (r *Router) handleEngineCommand(cid int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.engineName(cid)
		r.send(cid, "Текущий движок: "+cur+"\nИспользование:\n/engine gemini\n/engine gpt")
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.Engs.GetEngine(name); err != nil {
		r.send(cid, "❌ "+err.Error())
		return
	}
	r.chosen.Store(cid, name)
	eng, _ := r.Engs.GetEngine(name)
	r.send(cid, "✅ Движок: "+eng.Name()+" ("+eng.GetModel()+").")
}

func (r *Router) engineName(cid int64) string {
	if v, ok := r.chosen.Load(cid); ok {
		return v.(string)
	}
	return "gemini"
}

func (r *Router) pickEngine(cid int64) (ocr.Engine, error) {
	return r.Engs.GetEngine(r.engineName(cid))
}

func (r *Router) send(chatID int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Ошибка: %v", err))
}
