package web

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney formatea un importe con el símbolo de su moneda ISO. Sin importe devuelve "-";
// con moneda vacía o desconocida, solo el número.
func FormatMoney(amount *float64, cur *string) string {
	if amount == nil {
		return "-"
	}
	code := strings.ToUpper(strings.TrimSpace(str(cur)))
	unit, err := currency.ParseISO(code)
	if code == "" || err != nil {
		return printer.Sprintf("%.2f", *amount)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(*amount)))
}
