// internal/services/notifier/telegram.go
package notifier

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/pkg/response"
)

// TelegramNotifier шлёт дежурному чату сообщение о конце смены.
// Без токена работает вхолостую — стенду Telegram не обязателен.
type TelegramNotifier struct {
	botToken string
	chatID   string
}

func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{botToken: botToken, chatID: chatID}
}

func (n *TelegramNotifier) NotifyEndOfShift(sh models.ActiveShift) {
	worked := sh.DurationSec
	text := fmt.Sprintf("🔔 Смена охранника %s (пост %s) закончилась. Отработано: %s",
		sh.Username, sh.Post, response.FormatWorked(worked))
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	if n.botToken == "" || n.chatID == "" {
		return
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	resp, err := http.PostForm(endpoint, url.Values{
		"chat_id": {n.chatID},
		"text":    {text},
	})
	if err != nil {
		log.Printf("❌ Telegram notify failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Telegram notify: unexpected status %d", resp.StatusCode)
	}
}
