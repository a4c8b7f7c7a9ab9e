// Package lang holds the bot's user-facing strings and number formatting.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Fa = "fa"
	En = "en"
)

var texts = map[string]map[string]string{
	Fa: {
		"cafe_title":        "☕ کافه گندم",
		"menu_title":        "منو کافه",
		"menu_hint":         "برای افزودن به سبد روی هر آیتم بزنید.",
		"cart_button":       "🛒 سبد خرید (%s)",
		"admin_button":      "🔐 ورود مدیریت",
		"cart_title":        "🛒 سبد خرید شما",
		"cart_empty":        "سبد خرید شما خالی است.",
		"cart_total":        "جمع کل: %s",
		"cart_submit":       "✅ ثبت سفارش",
		"cart_back":         "← بازگشت به منو",
		"order_success":     "✅ سفارش شما با موفقیت ثبت شد!",
		"order_failed":      "ثبت سفارش ناموفق بود، دوباره تلاش کنید.",
		"login_title":       "🔐 ورود مدیریت",
		"login_username":    "نام کاربری را بفرستید:",
		"login_password":    "رمز عبور را بفرستید:",
		"login_error":       "نام کاربری یا رمز عبور اشتباه است",
		"login_back":        "← بازگشت به منوی کافه",
		"dashboard_title":   "📋 داشبورد مدیریت",
		"dashboard_empty":   "در حال حاضر سفارشی ندارید.\nبه محض ثبت سفارش توسط مشتری، اینجا نمایش داده می‌شود.",
		"dashboard_count":   "سفارش‌های در صف: %s",
		"dashboard_menu":    "مشاهده منو",
		"dashboard_exit":    "خروج",
		"dashboard_refresh": "🔄 بروزرسانی",
		"order_id":          "ORD-%s",
		"order_total":       "مبلغ نهایی: %s",
		"order_time":        "🕒 %s • %s",
		"status_pending":    "در صف تهیه",
		"status_completed":  "تحویل شده",
		"order_complete":    "تکمیل و حذف از لیست",
		"order_delete":      "🗑 حذف",
		"delete_prompt":     "آیا از حذف این سفارش مطمئن هستید؟",
		"delete_yes":        "بله، حذف شود",
		"delete_no":         "خیر",
		"order_gone":        "این سفارش دیگر در صف نیست.",
		"action_failed":     "عملیات ناموفق بود، دوباره تلاش کنید.",
		"new_order_notice":  "🔔 سفارش جدید ORD-%s\n%s\nمبلغ نهایی: %s",
		"currency":          "تومان",
		"not_available":     "این آیتم در منو نیست.",
	},
	En: {
		"cafe_title":        "☕ Café Gandom",
		"menu_title":        "Café menu",
		"menu_hint":         "Tap an item to add it to your cart.",
		"cart_button":       "🛒 Cart (%s)",
		"admin_button":      "🔐 Admin login",
		"cart_title":        "🛒 Your cart",
		"cart_empty":        "Your cart is empty.",
		"cart_total":        "Total: %s",
		"cart_submit":       "✅ Place order",
		"cart_back":         "← Back to menu",
		"order_success":     "✅ Your order has been placed!",
		"order_failed":      "Could not place the order, please try again.",
		"login_title":       "🔐 Admin login",
		"login_username":    "Send the username:",
		"login_password":    "Send the password:",
		"login_error":       "Wrong username or password",
		"login_back":        "← Back to the café menu",
		"dashboard_title":   "📋 Admin dashboard",
		"dashboard_empty":   "No orders right now.\nNew orders show up here as soon as customers place them.",
		"dashboard_count":   "Orders in queue: %s",
		"dashboard_menu":    "View menu",
		"dashboard_exit":    "Exit",
		"dashboard_refresh": "🔄 Refresh",
		"order_id":          "ORD-%s",
		"order_total":       "Total: %s",
		"order_time":        "🕒 %s • %s",
		"status_pending":    "In queue",
		"status_completed":  "Delivered",
		"order_complete":    "Complete and remove",
		"order_delete":      "🗑 Delete",
		"delete_prompt":     "Are you sure you want to delete this order?",
		"delete_yes":        "Yes, delete",
		"delete_no":         "No",
		"order_gone":        "This order is no longer in the queue.",
		"action_failed":     "Action failed, please try again.",
		"new_order_notice":  "🔔 New order ORD-%s\n%s\nTotal: %s",
		"currency":          "Toman",
		"not_available":     "This item is not on the menu.",
	},
}

// Normalize maps unknown codes to Fa.
func Normalize(l string) string {
	if _, ok := texts[l]; ok {
		return l
	}
	return Fa
}

// T returns the text for key in language l, formatted with args. Unknown keys
// fall back to Fa and then to the key itself.
func T(l, key string, args ...interface{}) string {
	s, ok := texts[Normalize(l)][key]
	if !ok {
		if s, ok = texts[Fa][key]; !ok {
			s = key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

var printers = map[string]*message.Printer{
	Fa: message.NewPrinter(language.Persian),
	En: message.NewPrinter(language.English),
}

func printer(l string) *message.Printer {
	return printers[Normalize(l)]
}

// Digits rewrites the ASCII digits in s (times, dates) in the digits of language l.
func Digits(l, s string) string {
	p := printer(l)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteString(p.Sprint(int(r - '0')))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Number groups n by thousands in the digits of language l ("70,000" / "۷۰٬۰۰۰").
func Number(l string, n int64) string {
	return printer(l).Sprintf("%d", n)
}

// FormatPrice renders a price with the currency name.
func FormatPrice(l string, price int64) string {
	return Number(l, price) + " " + T(l, "currency")
}
