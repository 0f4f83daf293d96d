package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsOnFirstLoad(t *testing.T) {
	s := NewSettingsStore(testDB(t))

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "INV-", settings.InvoicePrefix)
	assert.Equal(t, "$", settings.Currency)
	assert.Equal(t, 10.0, settings.TaxRate)
}

func TestUpdateSettingsMergesPartial(t *testing.T) {
	s := NewSettingsStore(testDB(t))

	updated, err := s.UpdateSettings(map[string]any{
		"currency": "€",
		"taxRate":  19,
	})
	require.NoError(t, err)
	assert.Equal(t, "€", updated.Currency)
	assert.Equal(t, 19.0, updated.TaxRate)
	// Untouched fields keep their values
	assert.Equal(t, "INV-", updated.InvoicePrefix)

	// Persisted across loads
	reloaded, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "€", reloaded.Currency)
	assert.Equal(t, "INV-", reloaded.InvoicePrefix)
}

func TestOptionsDefaultsAndMerge(t *testing.T) {
	s := NewSettingsStore(testDB(t))

	options, err := s.Options()
	require.NoError(t, err)
	assert.Contains(t, options.Status, "Active")
	assert.Contains(t, options.PaymentMethods, "Stripe")
	assert.Contains(t, options.InvoiceStatus, "Sent")

	updated, err := s.UpdateOptions(map[string]any{
		"paymentMethods": []string{"Bank Transfer", "Crypto"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bank Transfer", "Crypto"}, updated.PaymentMethods)
	// Other enumerations untouched
	assert.Contains(t, updated.Status, "Active")
}
