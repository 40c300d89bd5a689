package billing

import (
	"testing"
	"time"

	"github.com/rechnung-app/rechnung/internal/models"
)

func at(day string) time.Time {
	ts, err := time.Parse(time.RFC3339, day)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestDeriveStatusPendingBecomesOverdue(t *testing.T) {
	inv := models.Invoice{Status: models.StatusPending, DueDate: "2025-02-03"}
	if got := DeriveStatus(inv, at("2025-02-04T00:00:01+01:00")); got != models.StatusOverdue {
		t.Fatalf("day after due date: got %s, want overdue", got)
	}
	if got := DeriveStatus(inv, at("2025-03-01T12:00:00+01:00")); got != models.StatusOverdue {
		t.Fatalf("long past due date: got %s, want overdue", got)
	}
}

func TestDeriveStatusDueDateItselfNotOverdue(t *testing.T) {
	inv := models.Invoice{Status: models.StatusPending, DueDate: "2025-02-03"}
	if got := DeriveStatus(inv, at("2025-02-03T23:59:59+01:00")); got != models.StatusPending {
		t.Fatalf("on due date: got %s, want pending", got)
	}
	if got := DeriveStatus(inv, at("2025-02-01T09:00:00+01:00")); got != models.StatusPending {
		t.Fatalf("before due date: got %s, want pending", got)
	}
}

func TestDeriveStatusDraftAndPaidFrozen(t *testing.T) {
	draft := models.Invoice{Status: models.StatusDraft, DueDate: "2020-01-01"}
	if got := DeriveStatus(draft, at("2025-02-04T10:00:00+01:00")); got != models.StatusDraft {
		t.Fatalf("draft: got %s", got)
	}
	paid := models.Invoice{Status: models.StatusPaid, DueDate: "2020-01-01", PaidDate: "2020-02-01"}
	if got := DeriveStatus(paid, at("2025-02-04T10:00:00+01:00")); got != models.StatusPaid {
		t.Fatalf("paid: got %s", got)
	}
}

func TestDeriveStatusOverdueStaysConsistent(t *testing.T) {
	// a stored overdue invoice whose due date moved into the future derives back to pending
	inv := models.Invoice{Status: models.StatusOverdue, DueDate: "2099-01-01"}
	if got := DeriveStatus(inv, at("2025-02-04T10:00:00+01:00")); got != models.StatusPending {
		t.Fatalf("future due date: got %s, want pending", got)
	}
}

func TestDeriveStatusBadDueDate(t *testing.T) {
	inv := models.Invoice{Status: models.StatusPending, DueDate: "someday"}
	if got := DeriveStatus(inv, at("2025-02-04T10:00:00+01:00")); got != models.StatusPending {
		t.Fatalf("bad due date: got %s, want pending", got)
	}
}
