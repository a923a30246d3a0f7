package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var esPrinter = message.NewPrinter(language.Spanish)

// Money renders an amount with Spanish separators and the euro suffix,
// e.g. "1.234,56 €".
func Money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return esPrinter.Sprintf("%v €", number.Decimal(f, number.Scale(2)))
}

// Percent renders a rate with the % suffix, e.g. "21 %".
func Percent(d decimal.Decimal) string {
	f, _ := d.Float64()
	return esPrinter.Sprintf("%v %%", number.Decimal(f, number.MaxFractionDigits(2)))
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LongDate renders a long-form Spanish date, e.g. "2 de enero de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// MonthYear renders a report period label, e.g. "Agosto 2026".
func MonthYear(t time.Time) string {
	month := spanishMonths[t.Month()-1]
	return fmt.Sprintf("%s%s %d", strings.ToUpper(month[:1]), month[1:], t.Year())
}

var (
	colorPending   = props.Color{Red: 245, Green: 158, Blue: 11} // amber
	colorPaid      = props.Color{Red: 22, Green: 163, Blue: 74}  // green
	colorCancelled = props.Color{Red: 220, Green: 38, Blue: 38}  // red
	colorHeader    = props.Color{Red: 30, Green: 41, Blue: 59}
	colorMuted     = props.Color{Red: 100, Green: 116, Blue: 139}
	colorWhite     = props.Color{Red: 255, Green: 255, Blue: 255}
)

// StatusColor maps an invoice status to its badge color. Unrecognized
// statuses fall back to the pending color; that is the documented default,
// not an error.
func StatusColor(status string) props.Color {
	switch status {
	case "paid":
		return colorPaid
	case "cancelled":
		return colorCancelled
	default:
		return colorPending
	}
}

// StatusLabel is the Spanish badge text.
func StatusLabel(status string) string {
	switch status {
	case "draft":
		return "BORRADOR"
	case "pending":
		return "PENDIENTE"
	case "paid":
		return "PAGADA"
	case "cancelled":
		return "ANULADA"
	default:
		return "PENDIENTE"
	}
}
