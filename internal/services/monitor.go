package services

import (
	"fmt"
	"log"
	"time"

	"hostmaster/internal/store"
)

// MonitorService runs the renewal sweep: classify every record and raise
// alerts, then optionally stamp due invoices. The sweep only ever runs when
// invoked, either by the scheduler or by an explicit API call.
type MonitorService struct {
	records     *store.RecordStore
	center      *NotificationCenter
	invoicer    *InvoiceService
	autoInvoice bool
}

// NewMonitorService creates a new monitoring service
func NewMonitorService(records *store.RecordStore, center *NotificationCenter, invoicer *InvoiceService, autoInvoice bool) *MonitorService {
	return &MonitorService{
		records:     records,
		center:      center,
		invoicer:    invoicer,
		autoInvoice: autoInvoice,
	}
}

// Sweep evaluates all records once. Returns the number of notifications
// emitted.
func (s *MonitorService) Sweep(today time.Time) (int, error) {
	records, err := s.records.List()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch records: %w", err)
	}

	log.Printf("Evaluating %d hosting records...", len(records))
	emitted := s.center.Generate(records, today)

	if s.autoInvoice {
		if _, err := s.invoicer.Run(today); err != nil {
			log.Printf("Auto-invoicing failed: %v", err)
		}
	}

	return emitted, nil
}
