package bot

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cafe-gandom/config"
	"cafe-gandom/lang"
	"cafe-gandom/models"
	"cafe-gandom/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cbAdd       = "add:"
	cbInc       = "inc:"
	cbDec       = "dec:"
	cbRemove    = "rm:"
	cbCart      = "cart"
	cbSubmit    = "submit"
	cbMenu      = "menu"
	cbAdmin     = "admin"
	cbLoginBack = "login:back"
	cbNoop      = "noop"

	toastDelay = 3 * time.Second
)

// sender is the part of *tgbotapi.BotAPI the bot talks through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	tg       *tgbotapi.BotAPI
	api      sender
	store    *services.OrderStore
	catalog  *services.Catalog
	sessions *services.Sessions
	lang     string
	loc      *time.Location

	// dashboard messages (header and order cards) posted per chat
	dashMsgs map[int64][]int

	toastDelay time.Duration
	after      func(d time.Duration, f func())
}

func New(cfg *config.Config, store *services.OrderStore, catalog *services.Catalog, sessions *services.Sessions) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newBot(api, store, catalog, sessions, cfg.Lang)
	b.tg = api
	return b, nil
}

func newBot(api sender, store *services.OrderStore, catalog *services.Catalog, sessions *services.Sessions, langCode string) *Bot {
	return &Bot{
		api:        api,
		store:      store,
		catalog:    catalog,
		sessions:   sessions,
		lang:       lang.Normalize(langCode),
		loc:        time.Local,
		dashMsgs:   make(map[int64][]int),
		toastDelay: toastDelay,
		after:      func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

func (b *Bot) setBotCommands() error {
	_, err := b.api.Request(tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "menu", Description: lang.T(b.lang, "menu_title")},
		tgbotapi.BotCommand{Command: "cart", Description: lang.T(b.lang, "cart_title")},
		tgbotapi.BotCommand{Command: "admin", Description: lang.T(b.lang, "login_title")},
	))
	return err
}

// Start runs the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		log.Printf("set commands: %v", err)
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message == nil {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) send(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("send error: %v", err)
	}
	return sent, err
}

// edit replaces a screen in place. "message is not modified" is ignored.
func (b *Bot) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := b.api.Send(edit); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		log.Printf("edit error: %v", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("delete message %d: %v", messageID, err)
	}
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}

// toast sends a short notice and removes it after toastDelay.
func (b *Bot) toast(chatID int64, text string) {
	sent, err := b.send(chatID, text, nil)
	if err != nil {
		return
	}
	b.after(b.toastDelay, func() { b.deleteMessage(chatID, sent.MessageID) })
}

func (b *Bot) sendMenu(chatID int64, sess *services.Session) {
	text, kb := menuScreen(b.lang, b.catalog, sess.Cart)
	_, _ = b.send(chatID, text, &kb)
}

func (b *Bot) sendCart(chatID int64, sess *services.Session) {
	text, kb := cartScreen(b.lang, sess.Cart)
	_, _ = b.send(chatID, text, &kb)
}

func (b *Bot) sendLogin(chatID int64, sess *services.Session) {
	text, kb := loginScreen(b.lang, sess.View)
	_, _ = b.send(chatID, text, &kb)
}

// sendDashboard replaces any dashboard already in the chat with the header and
// one card per queued order, newest first.
func (b *Bot) sendDashboard(chatID int64) {
	b.clearDashboard(chatID, 0)
	orders := b.store.Orders()
	header := services.BuildDashboardHeader(len(orders), b.lang)
	b.postDashboardMessage(chatID, header)
	for _, o := range orders {
		b.postDashboardMessage(chatID, services.BuildAdminCard(o, b.lang, b.loc))
	}
}

func (b *Bot) postDashboardMessage(chatID int64, c services.OrderCardContent) {
	sent, err := b.send(chatID, c.Text, cardMarkup(c))
	if err == nil {
		b.dashMsgs[chatID] = append(b.dashMsgs[chatID], sent.MessageID)
	}
}

// clearDashboard deletes the posted dashboard messages of the chat except keep.
func (b *Bot) clearDashboard(chatID int64, keep int) {
	for _, id := range b.dashMsgs[chatID] {
		if id != keep {
			b.deleteMessage(chatID, id)
		}
	}
	delete(b.dashMsgs, chatID)
}

// removeCard deletes one order card and stops tracking it.
func (b *Bot) removeCard(chatID int64, messageID int) {
	b.deleteMessage(chatID, messageID)
	ids := b.dashMsgs[chatID]
	for i, id := range ids {
		if id == messageID {
			b.dashMsgs[chatID] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := b.sessions.Get(chatID)
	view := sess.View
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/start", "/menu":
		switch view.View() {
		case models.ViewAdminLogin:
			_ = view.Back()
		case models.ViewAdminDashboard:
			_ = view.Exit()
			b.clearDashboard(chatID, 0)
		}
		b.sendMenu(chatID, sess)
		return
	case "/cart":
		if view.View() == models.ViewCustomer {
			b.sendCart(chatID, sess)
			return
		}
	case "/admin":
		switch view.View() {
		case models.ViewCustomer:
			_ = view.EnterAdmin()
			b.sendLogin(chatID, sess)
		case models.ViewAdminLogin:
			b.sendLogin(chatID, sess)
		case models.ViewAdminDashboard:
			b.sendDashboard(chatID)
		}
		return
	case "/back":
		if view.Back() == nil {
			b.sendMenu(chatID, sess)
			return
		}
	case "/exit":
		if view.Exit() == nil {
			b.clearDashboard(chatID, 0)
			b.sendMenu(chatID, sess)
			return
		}
	}

	switch view.View() {
	case models.ViewAdminLogin:
		if text == "" || strings.HasPrefix(text, "/") {
			b.sendLogin(chatID, sess)
			return
		}
		b.handleLoginInput(chatID, msg.MessageID, sess, msg.Text)
	case models.ViewAdminDashboard:
		b.sendDashboard(chatID)
	default:
		b.sendMenu(chatID, sess)
	}
}

// handleLoginInput takes the username, then the password, exactly as typed.
// The password message is deleted from the chat.
func (b *Bot) handleLoginInput(chatID int64, messageID int, sess *services.Session, text string) {
	view := sess.View
	form := view.Form()
	if form.Username == "" {
		_ = view.SetUsername(text)
		b.sendLogin(chatID, sess)
		return
	}

	b.deleteMessage(chatID, messageID)
	ok, err := view.Login(form.Username, text)
	if err != nil {
		log.Printf("login: %v", err)
		return
	}
	if ok {
		log.Printf("chat %d opened the admin dashboard", chatID)
		b.sendDashboard(chatID)
		return
	}
	log.Printf("chat %d: failed admin login", chatID)
	_ = view.SetUsername("")
	_ = view.SetPassword("")
	b.sendLogin(chatID, sess)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data
	sess := b.sessions.Get(chatID)

	switch {
	case data == cbNoop:
		b.answer(cq.ID, "")
	case data == services.CallbackDashRefresh || data == services.CallbackDashMenu || data == services.CallbackDashExit ||
		strings.HasPrefix(data, services.CallbackComplete) || strings.HasPrefix(data, services.CallbackDelete) ||
		strings.HasPrefix(data, services.CallbackDeleteConfirm) || strings.HasPrefix(data, services.CallbackDeleteCancel):
		b.handleAdminCallback(ctx, cq, sess)
	case data == cbLoginBack:
		b.answer(cq.ID, "")
		if sess.View.Back() == nil {
			text, kb := menuScreen(b.lang, b.catalog, sess.Cart)
			b.edit(chatID, messageID, text, kb)
		}
	default:
		if sess.View.View() != models.ViewCustomer {
			b.answer(cq.ID, "")
			b.resend(chatID, sess)
			return
		}
		b.handleCustomerCallback(ctx, cq, sess)
	}
}

// resend shows the session's current screen as a new message.
func (b *Bot) resend(chatID int64, sess *services.Session) {
	switch sess.View.View() {
	case models.ViewAdminLogin:
		b.sendLogin(chatID, sess)
	case models.ViewAdminDashboard:
		b.sendDashboard(chatID)
	default:
		b.sendMenu(chatID, sess)
	}
}

func (b *Bot) handleCustomerCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, sess *services.Session) {
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data
	cart := sess.Cart

	switch {
	case strings.HasPrefix(data, cbAdd):
		item, ok := b.catalog.GetMenuItem(strings.TrimPrefix(data, cbAdd))
		if !ok {
			b.answer(cq.ID, lang.T(b.lang, "not_available"))
			return
		}
		cart.AddItem(item)
		b.answer(cq.ID, item.Name+" ✓")
		text, kb := menuScreen(b.lang, b.catalog, cart)
		b.edit(chatID, messageID, text, kb)
	case strings.HasPrefix(data, cbInc):
		cart.UpdateQuantity(strings.TrimPrefix(data, cbInc), 1)
		b.answer(cq.ID, "")
		b.editCart(chatID, messageID, cart)
	case strings.HasPrefix(data, cbDec):
		cart.UpdateQuantity(strings.TrimPrefix(data, cbDec), -1)
		b.answer(cq.ID, "")
		b.editCart(chatID, messageID, cart)
	case strings.HasPrefix(data, cbRemove):
		cart.RemoveItem(strings.TrimPrefix(data, cbRemove))
		b.answer(cq.ID, "")
		b.editCart(chatID, messageID, cart)
	case data == cbCart:
		b.answer(cq.ID, "")
		b.editCart(chatID, messageID, cart)
	case data == cbMenu:
		b.answer(cq.ID, "")
		text, kb := menuScreen(b.lang, b.catalog, cart)
		b.edit(chatID, messageID, text, kb)
	case data == cbSubmit:
		b.submitOrder(ctx, cq, sess)
	case data == cbAdmin:
		b.answer(cq.ID, "")
		if sess.View.EnterAdmin() == nil {
			text, kb := loginScreen(b.lang, sess.View)
			b.edit(chatID, messageID, text, kb)
		}
	default:
		b.answer(cq.ID, "")
	}
}

func (b *Bot) editCart(chatID int64, messageID int, cart *services.Cart) {
	text, kb := cartScreen(b.lang, cart)
	b.edit(chatID, messageID, text, kb)
}

func (b *Bot) submitOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, sess *services.Session) {
	chatID := cq.Message.Chat.ID
	id, err := b.store.SubmitCart(ctx, sess.Cart)
	if errors.Is(err, services.ErrEmptyCart) {
		b.answer(cq.ID, lang.T(b.lang, "cart_empty"))
		return
	}
	if err != nil {
		log.Printf("chat %d: submit order: %v", chatID, err)
		b.answer(cq.ID, lang.T(b.lang, "order_failed"))
		return
	}
	log.Printf("chat %d submitted order %s", chatID, id)
	b.answer(cq.ID, "")
	text, kb := menuScreen(b.lang, b.catalog, sess.Cart)
	b.edit(chatID, cq.Message.MessageID, text, kb)
	b.toast(chatID, lang.T(b.lang, "order_success"))
}

func (b *Bot) handleAdminCallback(ctx context.Context, cq *tgbotapi.CallbackQuery, sess *services.Session) {
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data

	if sess.View.View() != models.ViewAdminDashboard {
		b.answer(cq.ID, "")
		b.resend(chatID, sess)
		return
	}

	switch {
	case data == services.CallbackDashRefresh:
		b.answer(cq.ID, "")
		b.sendDashboard(chatID)
	case data == services.CallbackDashMenu || data == services.CallbackDashExit:
		b.answer(cq.ID, "")
		_ = sess.View.Exit()
		b.clearDashboard(chatID, messageID)
		text, kb := menuScreen(b.lang, b.catalog, sess.Cart)
		b.edit(chatID, messageID, text, kb)
	case strings.HasPrefix(data, services.CallbackComplete):
		id := strings.TrimPrefix(data, services.CallbackComplete)
		if !b.orderExists(cq, id) {
			return
		}
		if err := b.store.Complete(ctx, id); err != nil {
			log.Printf("complete order %s: %v", id, err)
			b.answer(cq.ID, lang.T(b.lang, "action_failed"))
			return
		}
		b.answer(cq.ID, "")
		b.removeCard(chatID, messageID)
	case strings.HasPrefix(data, services.CallbackDeleteConfirm):
		id := strings.TrimPrefix(data, services.CallbackDeleteConfirm)
		if !b.orderExists(cq, id) {
			return
		}
		if err := b.store.Delete(ctx, id, services.Answered(true)); err != nil {
			log.Printf("delete order %s: %v", id, err)
			b.answer(cq.ID, lang.T(b.lang, "action_failed"))
			return
		}
		b.answer(cq.ID, "")
		b.removeCard(chatID, messageID)
	case strings.HasPrefix(data, services.CallbackDeleteCancel):
		id := strings.TrimPrefix(data, services.CallbackDeleteCancel)
		if !b.orderExists(cq, id) {
			return
		}
		_ = b.store.Delete(ctx, id, services.Answered(false))
		b.answer(cq.ID, "")
		if o, ok := b.store.Get(id); ok {
			card := services.BuildAdminCard(o, b.lang, b.loc)
			b.edit(chatID, messageID, card.Text, *cardMarkup(card))
		}
	case strings.HasPrefix(data, services.CallbackDelete):
		id := strings.TrimPrefix(data, services.CallbackDelete)
		o, ok := b.store.Get(id)
		if !ok {
			b.answer(cq.ID, lang.T(b.lang, "order_gone"))
			b.removeCard(chatID, messageID)
			return
		}
		b.answer(cq.ID, "")
		card := services.BuildDeleteConfirmCard(o, b.lang, b.loc)
		b.edit(chatID, messageID, card.Text, *cardMarkup(card))
	default:
		b.answer(cq.ID, "")
	}
}

// orderExists answers and removes a stale card when the order has already left the queue.
func (b *Bot) orderExists(cq *tgbotapi.CallbackQuery, id string) bool {
	if _, ok := b.store.Get(id); ok {
		return true
	}
	b.answer(cq.ID, lang.T(b.lang, "order_gone"))
	b.removeCard(cq.Message.Chat.ID, cq.Message.MessageID)
	return false
}
