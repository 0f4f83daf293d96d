package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostmaster/internal/models"
	"hostmaster/internal/renewal"
)

// MaxNotifications is how many notifications the center retains
const MaxNotifications = 20

// NotificationCenter holds in-app alerts for the lifetime of the process.
// Both the HTTP handlers and the scheduler touch it, so access is
// mutex-guarded.
type NotificationCenter struct {
	mu      sync.Mutex
	items   []models.Notification
	alerted map[string]renewal.Classification // record id -> last alerted classification
}

// NewNotificationCenter creates an empty notification center
func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{
		alerted: make(map[string]renewal.Classification),
	}
}

// Generate classifies every record and emits at most one notification per
// record per run: a warning for upcoming renewals naming the exact days
// remaining, an error for expired unpaid hosting. A record keeps quiet while
// its classification is unchanged from the last alert, so repeated sweeps of
// an unchanged collection do not pile up duplicates. Returns how many
// notifications were emitted.
func (c *NotificationCenter) Generate(records []models.HostingRecord, today time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	emitted := 0
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		class := renewal.Classify(&rec, today)
		seen[rec.ID] = true

		if class == renewal.Normal {
			delete(c.alerted, rec.ID)
			continue
		}
		if c.alerted[rec.ID] == class {
			continue
		}
		c.alerted[rec.ID] = class

		switch class {
		case renewal.Upcoming:
			days, _ := renewal.DaysToRenewal(rec.ValidationDate, today)
			c.push(models.Notification{
				Type:  "warning",
				Title: "Renewal Upcoming",
				Message: fmt.Sprintf("%s (%s) is due for renewal in %d days.",
					rec.ClientName, rec.Website, days),
			})
		case renewal.Overdue:
			c.push(models.Notification{
				Type:  "error",
				Title: "Hosting Expired/Due",
				Message: fmt.Sprintf("Hosting for %s (%s) has expired and is unpaid.",
					rec.ClientName, rec.Website),
			})
		}
		emitted++
	}

	// Forget deleted records so a recreated id can alert again
	for id := range c.alerted {
		if !seen[id] {
			delete(c.alerted, id)
		}
	}

	return emitted
}

// Add emits a standalone notification, e.g. the auto-invoice success summary
func (c *NotificationCenter) Add(ntype, title, message string) models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.push(models.Notification{Type: ntype, Title: title, Message: message})
}

// push prepends and truncates to the retention cap. Caller holds the lock.
func (c *NotificationCenter) push(n models.Notification) models.Notification {
	n.ID = uuid.NewString()
	n.Date = time.Now()

	c.items = append([]models.Notification{n}, c.items...)
	if len(c.items) > MaxNotifications {
		c.items = c.items[:MaxNotifications]
	}
	return n
}

// List returns the retained notifications, newest first
func (c *NotificationCenter) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// MarkRead marks one notification read by id. Marking an already-read or
// unknown notification is a no-op.
func (c *NotificationCenter) MarkRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return
		}
	}
}

// MarkAllRead marks every retained notification read
func (c *NotificationCenter) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		c.items[i].Read = true
	}
}

// UnreadCount returns how many retained notifications are unread
func (c *NotificationCenter) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}
