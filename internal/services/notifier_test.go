package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmaster/internal/models"
)

var refDay = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func recordDueIn(id string, days int) models.HostingRecord {
	return models.HostingRecord{
		ID:             id,
		ClientName:     "Client " + id,
		Website:        id + ".example.com",
		ValidationDate: refDay.AddDate(0, 0, days).Format("2006-01-02"),
		PaymentStatus:  models.PaymentUnpaid,
		InvoiceStatus:  models.InvoiceDraft,
	}
}

func TestGenerateUpcomingWarning(t *testing.T) {
	center := NewNotificationCenter()

	emitted := center.Generate([]models.HostingRecord{recordDueIn("r1", 10)}, refDay)
	require.Equal(t, 1, emitted)

	items := center.List()
	require.Len(t, items, 1)
	assert.Equal(t, "warning", items[0].Type)
	assert.Equal(t, "Renewal Upcoming", items[0].Title)
	assert.Contains(t, items[0].Message, "Client r1")
	assert.Contains(t, items[0].Message, "r1.example.com")
	assert.Contains(t, items[0].Message, "10 days")
	assert.False(t, items[0].Read)
}

func TestGenerateOverdueError(t *testing.T) {
	center := NewNotificationCenter()

	emitted := center.Generate([]models.HostingRecord{recordDueIn("r1", -5)}, refDay)
	require.Equal(t, 1, emitted)

	items := center.List()
	require.Len(t, items, 1)
	assert.Equal(t, "error", items[0].Type)
	assert.Equal(t, "Hosting Expired/Due", items[0].Title)
	assert.Contains(t, items[0].Message, "Client r1")
	assert.Contains(t, items[0].Message, "r1.example.com")
}

func TestGenerateNormalRecordsStayQuiet(t *testing.T) {
	center := NewNotificationCenter()

	records := []models.HostingRecord{
		recordDueIn("far", 90),
		{ID: "bad", ClientName: "Bad Date", ValidationDate: "not-a-date", PaymentStatus: models.PaymentUnpaid},
	}
	// Past due but paid is also Normal
	paid := recordDueIn("paid", -3)
	paid.PaymentStatus = models.PaymentPaid
	records = append(records, paid)

	emitted := center.Generate(records, refDay)
	assert.Equal(t, 0, emitted)
	assert.Empty(t, center.List())
}

func TestGenerateSuppressesRepeatAlerts(t *testing.T) {
	center := NewNotificationCenter()
	records := []models.HostingRecord{recordDueIn("r1", 10)}

	require.Equal(t, 1, center.Generate(records, refDay))
	require.Equal(t, 0, center.Generate(records, refDay))
	assert.Len(t, center.List(), 1)

	// Classification flips to Overdue -> alerts again
	records[0].ValidationDate = refDay.AddDate(0, 0, -1).Format("2006-01-02")
	require.Equal(t, 1, center.Generate(records, refDay))
	assert.Len(t, center.List(), 2)
}

func TestGenerateAlertsAgainAfterRecovery(t *testing.T) {
	center := NewNotificationCenter()

	due := []models.HostingRecord{recordDueIn("r1", 10)}
	require.Equal(t, 1, center.Generate(due, refDay))

	// Record renews and goes back to Normal
	renewed := []models.HostingRecord{recordDueIn("r1", 365)}
	require.Equal(t, 0, center.Generate(renewed, refDay))

	// Next year it comes due again
	require.Equal(t, 1, center.Generate(due, refDay))
}

func TestRetentionCapNewestFirst(t *testing.T) {
	center := NewNotificationCenter()

	var records []models.HostingRecord
	for i := 0; i < 25; i++ {
		records = append(records, recordDueIn(fmt.Sprintf("r%02d", i), 5))
	}

	center.Generate(records, refDay)

	items := center.List()
	require.Len(t, items, MaxNotifications)
	// The last record processed is the newest and sits at the front
	assert.Contains(t, items[0].Message, "r24")
}

func TestAddTruncatesAtCap(t *testing.T) {
	center := NewNotificationCenter()

	for i := 0; i < 30; i++ {
		center.Add("info", "Ping", fmt.Sprintf("message %d", i))
	}

	items := center.List()
	require.Len(t, items, MaxNotifications)
	assert.Contains(t, items[0].Message, "message 29")
	assert.Contains(t, items[len(items)-1].Message, "message 10")
}

func TestMarkReadIdempotent(t *testing.T) {
	center := NewNotificationCenter()
	n := center.Add("info", "Ping", "hello")

	require.Equal(t, 1, center.UnreadCount())

	center.MarkRead(n.ID)
	assert.Equal(t, 0, center.UnreadCount())
	assert.True(t, center.List()[0].Read)

	// Re-marking and unknown ids are no-ops
	center.MarkRead(n.ID)
	center.MarkRead("missing")
	assert.Equal(t, 0, center.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	center := NewNotificationCenter()
	center.Add("info", "One", "a")
	center.Add("info", "Two", "b")

	center.MarkAllRead()
	assert.Equal(t, 0, center.UnreadCount())
}
