// Package renewal holds the pure renewal/billing rules: days-to-renewal
// arithmetic, urgency classification, invoice eligibility and the
// payment-driven renewal extension. Nothing here touches the database.
package renewal

import (
	"time"

	"hostmaster/internal/models"
)

// Classification is the renewal urgency of a record
type Classification int

const (
	// Normal means no alert is needed
	Normal Classification = iota
	// Upcoming means the renewal date is within the next 30 days
	Upcoming
	// Overdue means the renewal date has passed and the record is unpaid
	Overdue
)

// UpcomingWindowDays is the alert/invoicing window before a renewal date
const UpcomingWindowDays = 30

// ISODate is the storage format for all record dates
const ISODate = "2006-01-02"

// ParseDate parses an ISO date string. It tolerates a few common timestamp
// variants the same way dates arrive from imports.
func ParseDate(s string) (time.Time, bool) {
	formats := []string{
		ISODate,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysToRenewal returns the ceiling day difference between the record's
// renewal date and today. Today is truncated to midnight first so the result
// is a pure calendar difference, independent of wall-clock time. ok is false
// when the renewal date does not parse.
func DaysToRenewal(validationDate string, today time.Time) (int, bool) {
	renew, ok := ParseDate(validationDate)
	if !ok {
		return 0, false
	}

	diff := midnight(renew).Sub(midnight(today.In(renew.Location())))
	hours := int(diff.Hours())

	days := hours / 24
	if hours%24 > 0 {
		days++
	}
	return days, true
}

// Classify returns the renewal urgency of a record. First match wins:
// within the 30-day window it is Upcoming; at or past the renewal date and
// not paid it is Overdue; everything else, including an unparsable renewal
// date, is Normal.
func Classify(rec *models.HostingRecord, today time.Time) Classification {
	days, ok := DaysToRenewal(rec.ValidationDate, today)
	if !ok {
		return Normal
	}

	switch {
	case days > 0 && days <= UpcomingWindowDays:
		return Upcoming
	case days <= 0 && rec.PaymentStatus != models.PaymentPaid:
		return Overdue
	default:
		return Normal
	}
}

// DueForInvoice reports whether the auto-invoice batch should stamp this
// record: within (or past) the 30-day window and not already Sent. Overdue
// records stay eligible no matter how far past due, and payment status does
// not matter.
func DueForInvoice(rec *models.HostingRecord, today time.Time) bool {
	days, ok := DaysToRenewal(rec.ValidationDate, today)
	if !ok {
		return false
	}
	return days <= UpcomingWindowDays && rec.InvoiceStatus != models.InvoiceSent
}

// AddOneYear advances a date by exactly one calendar year, keeping month and
// day. A Feb 29 base date is clamped to Feb 28 when the target year is not a
// leap year (time.AddDate would normalize it to Mar 1 instead).
func AddOneYear(t time.Time) time.Time {
	if t.Month() == time.February && t.Day() == 29 {
		next := time.Date(t.Year()+1, time.February, 29, 0, 0, 0, 0, t.Location())
		if next.Month() != time.February {
			return time.Date(t.Year()+1, time.February, 28, 0, 0, 0, 0, t.Location())
		}
		return next
	}
	return t.AddDate(1, 0, 0)
}

// ApplyPayment applies the paid-transition rule to a record whose payment
// status is being edited. Only a non-Paid -> Paid edge has side effects:
// the renewal date moves forward one year and the record reactivates.
// Re-submitting Paid on an already-paid record changes nothing else, so the
// extension can never be applied twice. An unparsable renewal date skips the
// extension but the record still reactivates.
func ApplyPayment(rec models.HostingRecord, newStatus string) models.HostingRecord {
	wasPaid := rec.PaymentStatus == models.PaymentPaid
	rec.PaymentStatus = newStatus

	if newStatus != models.PaymentPaid || wasPaid {
		return rec
	}

	if current, ok := ParseDate(rec.ValidationDate); ok {
		rec.ValidationDate = AddOneYear(current).Format(ISODate)
	}
	rec.Status = models.StatusActive

	return rec
}
