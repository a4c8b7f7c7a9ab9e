package bot

import (
	"fmt"
	"strings"

	"cafe-gandom/lang"
	"cafe-gandom/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// menuScreen lists the catalog as add buttons, followed by the cart and admin entries.
func menuScreen(l string, catalog *services.Catalog, cart *services.Cart) (string, tgbotapi.InlineKeyboardMarkup) {
	text := lang.T(l, "cafe_title") + "\n\n" + lang.T(l, "menu_title") + "\n" + lang.T(l, "menu_hint")

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range catalog.ListAllMenu() {
		label := fmt.Sprintf("%s - %s", item.Name, lang.FormatPrice(l, item.NumericPrice))
		if q := cart.Quantity(item.ID); q > 0 {
			label = lang.Digits(l, fmt.Sprintf("(%d) ", q)) + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbAdd+item.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "cart_button", lang.Digits(l, fmt.Sprint(cart.TotalItemCount()))), cbCart),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "admin_button"), cbAdmin),
	))
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cartScreen shows each line with -/+/remove controls, the total and the submit button.
func cartScreen(l string, cart *services.Cart) (string, tgbotapi.InlineKeyboardMarkup) {
	back := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "cart_back"), cbMenu))
	items := cart.Items()
	if len(items) == 0 {
		return lang.T(l, "cart_title") + "\n\n" + lang.T(l, "cart_empty"), tgbotapi.NewInlineKeyboardMarkup(back)
	}

	var b strings.Builder
	b.WriteString(lang.T(l, "cart_title") + "\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range items {
		b.WriteString(fmt.Sprintf("• %s × %s = %s\n",
			it.Name,
			lang.Digits(l, fmt.Sprint(it.Quantity)),
			lang.FormatPrice(l, it.LineTotal())))
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(it.Name, cbNoop)),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("➖", cbDec+it.ID),
				tgbotapi.NewInlineKeyboardButtonData(lang.Digits(l, fmt.Sprint(it.Quantity)), cbNoop),
				tgbotapi.NewInlineKeyboardButtonData("➕", cbInc+it.ID),
				tgbotapi.NewInlineKeyboardButtonData("✖", cbRemove+it.ID),
			),
		)
	}
	b.WriteString("\n" + lang.T(l, "cart_total", lang.FormatPrice(l, cart.TotalPrice())))

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "cart_submit"), cbSubmit)),
		back,
	)
	return b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// loginScreen asks for the username, or the password once a username was sent.
func loginScreen(l string, view *services.ViewController) (string, tgbotapi.InlineKeyboardMarkup) {
	text := lang.T(l, "login_title") + "\n\n"
	if e := view.LoginError(); e != "" {
		text += "⚠️ " + e + "\n\n"
	}
	if view.Form().Username == "" {
		text += lang.T(l, "login_username")
	} else {
		text += lang.T(l, "login_password")
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(lang.T(l, "login_back"), cbLoginBack),
	))
	return text, kb
}

// cardMarkup converts OrderCardContent.Buttons to a Telegram inline keyboard.
func cardMarkup(c services.OrderCardContent) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
