// Package format holds the locale formatting baked into the application:
// German number/date rendering for documents, English only in unit labels.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const isoDate = "2006-01-02"

var german = message.NewPrinter(language.German)

// Currency renders an amount the way a German invoice shows it: decimal
// comma, dot thousands separator, trailing symbol ("1.234,56 €").
func Currency(amount float64, currency string) string {
	symbol := "€"
	switch currency {
	case "", "EUR":
	case "USD":
		symbol = "$"
	case "GBP":
		symbol = "£"
	case "CHF":
		symbol = "CHF"
	default:
		symbol = currency
	}
	return german.Sprintf("%.2f %s", amount, symbol)
}

// Quantity renders a line-item quantity with the German decimal comma,
// trimming insignificant trailing zeros ("2", "1,5", "0,25").
func Quantity(q float64) string {
	return german.Sprintf("%v", q)
}

// Date renders an ISO date string as dd.MM.yyyy. Unparsable input is
// returned as-is.
func Date(iso string) string {
	d, err := time.Parse(isoDate, iso)
	if err != nil {
		return iso
	}
	return d.Format("02.01.2006")
}

// DateRange renders a Leistungszeitraum as "dd.MM.yyyy - dd.MM.yyyy".
func DateRange(startISO, endISO string) string {
	return Date(startISO) + " - " + Date(endISO)
}

// IBAN groups an IBAN into blocks of four characters.
func IBAN(iban string) string {
	cleaned := strings.ReplaceAll(iban, " ", "")
	if cleaned == "" {
		return iban
	}
	var b strings.Builder
	for i, r := range cleaned {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ISODate renders a time as a date-only ISO string.
func ISODate(t time.Time) string {
	return t.Format(isoDate)
}
