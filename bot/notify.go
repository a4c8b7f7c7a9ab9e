package bot

import (
	"context"
	"log"

	"cafe-gandom/lang"
	"cafe-gandom/models"
	"cafe-gandom/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AdminNotifier posts new orders to the admin chat through a second bot (MESSAGE_TOKEN).
type AdminNotifier struct {
	api    sender
	chatID int64
	lang   string
}

func NewAdminNotifier(token string, chatID int64, langCode string) (*AdminNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &AdminNotifier{api: api, chatID: chatID, lang: lang.Normalize(langCode)}, nil
}

// Notify implements services.OrderNotifier. Only submissions are announced.
func (n *AdminNotifier) Notify(_ context.Context, ev models.OrderEvent, order models.Order) {
	if ev.Type != models.EventOrderSubmitted || n.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, services.NewOrderNotice(order, n.lang))
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("notify admin about order %s: %v", order.ID, err)
	}
}
