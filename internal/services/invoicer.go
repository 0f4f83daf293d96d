package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"hostmaster/internal/models"
	"hostmaster/internal/renewal"
	"hostmaster/internal/store"
)

// InvoiceService runs the auto-invoice batch: every record inside the 30-day
// renewal window that has not already been invoiced gets stamped Sent with a
// fresh invoice number.
type InvoiceService struct {
	records  *store.RecordStore
	settings *store.SettingsStore
	center   *NotificationCenter
	counter  atomic.Int64
}

// NewInvoiceService creates an invoice service. The invoice-number counter is
// seeded once from the clock and only ever increments, so numbers issued by
// one process never collide.
func NewInvoiceService(records *store.RecordStore, settings *store.SettingsStore, center *NotificationCenter) *InvoiceService {
	s := &InvoiceService{
		records:  records,
		settings: settings,
		center:   center,
	}
	s.counter.Store(time.Now().UnixMilli())
	return s
}

// NextNumber returns the next invoice number: the configured prefix plus the
// last six digits of the counter.
func (s *InvoiceService) NextNumber(prefix string) string {
	n := s.counter.Add(1)
	return fmt.Sprintf("%s%06d", prefix, n%1000000)
}

// stamp rewrites every due record in the slice: Sent status, today's sending
// date, a fresh invoice number. Records not due pass through unchanged.
func (s *InvoiceService) stamp(records []models.HostingRecord, prefix string, today time.Time) ([]models.HostingRecord, int) {
	stamped := 0
	out := make([]models.HostingRecord, len(records))

	for i, rec := range records {
		if renewal.DueForInvoice(&rec, today) {
			rec.InvoiceStatus = models.InvoiceSent
			rec.SendingDate = today.Format(renewal.ISODate)
			rec.InvoiceNumber = s.NextNumber(prefix)
			stamped++
		}
		out[i] = rec
	}

	return out, stamped
}

// Run executes one auto-invoice batch. The whole collection is replaced in a
// single transaction, so callers never see a half-stamped batch. A success
// notification summarizes the run when anything was stamped. Re-running with
// no newly eligible records changes nothing: Sent records are skipped.
func (s *InvoiceService) Run(today time.Time) (int, error) {
	records, err := s.records.List()
	if err != nil {
		return 0, err
	}

	settings, err := s.settings.Settings()
	if err != nil {
		return 0, err
	}

	updated, stamped := s.stamp(records, settings.InvoicePrefix, today)
	if stamped == 0 {
		return 0, nil
	}

	if err := s.records.Replace(updated); err != nil {
		return 0, err
	}

	log.Printf("Auto-invoicing stamped %d records", stamped)
	s.center.Add("success", "Invoices Generated",
		fmt.Sprintf("%d invoices were generated and marked as Sent.", stamped))

	return stamped, nil
}
