package services

import (
	"fmt"
	"strings"
	"time"

	"cafe-gandom/lang"
	"cafe-gandom/models"
)

const (
	CallbackComplete      = "done:"
	CallbackDelete        = "del:"
	CallbackDeleteConfirm = "delyes:"
	CallbackDeleteCancel  = "delno:"
	CallbackDashMenu      = "dash:menu"
	CallbackDashExit      = "dash:exit"
	CallbackDashRefresh   = "dash:refresh"
)

// OrderCardButton is one inline button (text + callback_data).
type OrderCardButton struct {
	Text         string
	CallbackData string
}

// OrderCardContent is the text and optional inline keyboard for an order card.
type OrderCardContent struct {
	Text    string
	Buttons [][]OrderCardButton
}

func statusLabel(langCode, status string) string {
	switch status {
	case models.OrderStatusPending:
		return lang.T(langCode, "status_pending")
	case models.OrderStatusCompleted:
		return lang.T(langCode, "status_completed")
	default:
		return status
	}
}

// orderText renders header, status, time, items and total of one order.
func orderText(o models.Order, langCode string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	ts := time.UnixMilli(o.Timestamp).In(loc)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(lang.T(langCode, "order_id"), o.ID))
	b.WriteString("  [" + statusLabel(langCode, o.Status) + "]\n")
	b.WriteString(lang.Digits(langCode, fmt.Sprintf(lang.T(langCode, "order_time"), ts.Format("15:04:05"), ts.Format("2006/01/02"))))
	b.WriteString("\n\n")
	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("• %s × %s - %s\n",
			it.Name,
			lang.Digits(langCode, fmt.Sprint(it.Quantity)),
			lang.FormatPrice(langCode, it.NumericPrice)))
	}
	b.WriteString("\n" + fmt.Sprintf(lang.T(langCode, "order_total"), lang.FormatPrice(langCode, o.TotalPrice)))
	return b.String()
}

// BuildAdminCard returns the dashboard card for one order with Complete and Delete buttons.
func BuildAdminCard(o models.Order, langCode string, loc *time.Location) OrderCardContent {
	return OrderCardContent{
		Text: orderText(o, langCode, loc),
		Buttons: [][]OrderCardButton{{
			{Text: lang.T(langCode, "order_complete"), CallbackData: CallbackComplete + o.ID},
			{Text: lang.T(langCode, "order_delete"), CallbackData: CallbackDelete + o.ID},
		}},
	}
}

// BuildDeleteConfirmCard replaces the order card buttons with the Yes/No prompt.
func BuildDeleteConfirmCard(o models.Order, langCode string, loc *time.Location) OrderCardContent {
	return OrderCardContent{
		Text: orderText(o, langCode, loc) + "\n\n⚠️ " + lang.T(langCode, "delete_prompt"),
		Buttons: [][]OrderCardButton{{
			{Text: lang.T(langCode, "delete_yes"), CallbackData: CallbackDeleteConfirm + o.ID},
			{Text: lang.T(langCode, "delete_no"), CallbackData: CallbackDeleteCancel + o.ID},
		}},
	}
}

// BuildDashboardHeader is the message on top of the order cards.
func BuildDashboardHeader(orderCount int, langCode string) OrderCardContent {
	text := lang.T(langCode, "dashboard_title") + "\n\n"
	if orderCount == 0 {
		text += lang.T(langCode, "dashboard_empty")
	} else {
		text += fmt.Sprintf(lang.T(langCode, "dashboard_count"), lang.Digits(langCode, fmt.Sprint(orderCount)))
	}
	return OrderCardContent{
		Text: text,
		Buttons: [][]OrderCardButton{
			{{Text: lang.T(langCode, "dashboard_refresh"), CallbackData: CallbackDashRefresh}},
			{
				{Text: lang.T(langCode, "dashboard_menu"), CallbackData: CallbackDashMenu},
				{Text: lang.T(langCode, "dashboard_exit"), CallbackData: CallbackDashExit},
			},
		},
	}
}

// NewOrderNotice is the text sent to the admin chat when an order arrives.
func NewOrderNotice(o models.Order, langCode string) string {
	var lines []string
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("• %s × %s", it.Name, lang.Digits(langCode, fmt.Sprint(it.Quantity))))
	}
	return fmt.Sprintf(lang.T(langCode, "new_order_notice"), o.ID, strings.Join(lines, "\n"), lang.FormatPrice(langCode, o.TotalPrice))
}
