package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	if got := Currency(1234.56, "EUR"); got != "1.234,56 €" {
		t.Fatalf("got %q", got)
	}
	if got := Currency(0, "EUR"); got != "0,00 €" {
		t.Fatalf("got %q", got)
	}
	if got := Currency(19.9, ""); got != "19,90 €" {
		t.Fatalf("got %q", got)
	}
	if got := Currency(5, "CHF"); got != "5,00 CHF" {
		t.Fatalf("got %q", got)
	}
}

func TestQuantity(t *testing.T) {
	if got := Quantity(2); got != "2" {
		t.Fatalf("got %q", got)
	}
	if got := Quantity(1.5); got != "1,5" {
		t.Fatalf("got %q", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date("2025-02-03"); got != "03.02.2025" {
		t.Fatalf("got %q", got)
	}
	if got := Date("garbage"); got != "garbage" {
		t.Fatalf("got %q", got)
	}
}

func TestDateRange(t *testing.T) {
	if got := DateRange("2025-05-01", "2025-05-31"); got != "01.05.2025 - 31.05.2025" {
		t.Fatalf("got %q", got)
	}
}

func TestIBAN(t *testing.T) {
	if got := IBAN("DE89370400440532013000"); got != "DE89 3704 0044 0532 0130 00" {
		t.Fatalf("got %q", got)
	}
	if got := IBAN("DE89 3704 0044 0532 0130 00"); got != "DE89 3704 0044 0532 0130 00" {
		t.Fatalf("regrouping: got %q", got)
	}
	if got := IBAN(""); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestISODate(t *testing.T) {
	ts := time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)
	if got := ISODate(ts); got != "2025-06-15" {
		t.Fatalf("got %q", got)
	}
}
