package models

import (
	"time"
)

// Payment status values
const (
	PaymentPaid    = "Paid"
	PaymentUnpaid  = "Unpaid"
	PaymentOverdue = "Overdue"
)

// Invoice status values
const (
	InvoiceDraft     = "Draft"
	InvoiceSent      = "Sent"
	InvoicePaid      = "Paid"
	InvoiceCancelled = "Cancelled"
	InvoiceRefunded  = "Refunded"
)

// Hosting status values
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusExpired   = "Expired"
	StatusPending   = "Pending"
)

// HostingRecord represents one hosted client account
type HostingRecord struct {
	ID             string    `gorm:"primarykey" json:"id"`
	SerialNumber   int       `json:"serialNumber"`               // Display ordinal
	ClientName     string    `gorm:"not null" json:"clientName"` // Client name
	Website        string    `json:"website"`                    // Hosted site
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	StorageGB      float64   `json:"storageGB"`      // Allocated storage
	SetupDate      string    `json:"setupDate"`      // ISO date (YYYY-MM-DD)
	ValidationDate string    `json:"validationDate"` // Renewal date, ISO date
	Amount         float64   `json:"amount"`         // Billed amount
	Status         string    `json:"status"`         // Active/Suspended/Expired/Pending
	InvoiceNumber  string    `json:"invoiceNumber"`
	InvoiceDate    string    `json:"invoiceDate"`
	PaymentStatus  string    `json:"paymentStatus"` // Paid/Unpaid/Overdue
	InvoiceStatus  string    `json:"invoiceStatus"` // Draft/Sent/Paid/Cancelled/Refunded
	PaymentMethod  string    `json:"paymentMethod"`
	SendingDate    string    `json:"sendingDate"` // Set when an invoice is auto-sent
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Notification is an in-app alert. Notifications live in memory for the
// lifetime of the process and are never persisted.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Type    string    `json:"type"` // success/error/warning/info
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// AppSettings represents process-wide configuration, stored as a single JSON blob
type AppSettings struct {
	InvoicePrefix  string  `json:"invoicePrefix"`
	Currency       string  `json:"currency"`
	TaxRate        float64 `json:"taxRate"`
	CompanyName    string  `json:"companyName"`
	CompanyAddress string  `json:"companyAddress"`
	CompanyEmail   string  `json:"companyEmail"`
	CompanyPhone   string  `json:"companyPhone"`
	LogoURL        string  `json:"logoUrl"`
	ThemeColor     string  `json:"themeColor"`
	FontFamily     string  `json:"fontFamily"`
}

// DropdownOptions holds the mutable enumerations used for input validation
type DropdownOptions struct {
	Status         []string `json:"status"`
	PaymentMethods []string `json:"paymentMethods"`
	InvoiceStatus  []string `json:"invoiceStatus"`
}

// SettingsBlob is the single-row JSON storage shape for AppSettings and
// DropdownOptions (one row each, fixed ids).
type SettingsBlob struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Data string `json:"data"`
}

// TeamMember represents a panel team member
type TeamMember struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a login account
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"` // Username
	Password  string    `gorm:"not null" json:"-"`                    // Hashed password (excluded from JSON)
	Email     string    `json:"email"`                                // Email
	IsActive  bool      `gorm:"default:true" json:"is_active"`        // Account status
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings applied on first boot
func DefaultSettings() AppSettings {
	return AppSettings{
		InvoicePrefix:  "INV-",
		Currency:       "$",
		TaxRate:        10,
		CompanyName:    "HostMaster Solutions",
		CompanyAddress: "123 Cloud Avenue, Server City",
		CompanyEmail:   "support@hostmaster.com",
		CompanyPhone:   "+1 (555) 123-4567",
		ThemeColor:     "indigo",
		FontFamily:     "Inter",
	}
}

// DefaultOptions returns the dropdown enumerations applied on first boot
func DefaultOptions() DropdownOptions {
	return DropdownOptions{
		Status:         []string{StatusActive, StatusSuspended, StatusExpired, StatusPending},
		PaymentMethods: []string{"Bank Transfer", "PayPal", "Stripe", "Cash", "Credit Card"},
		InvoiceStatus:  []string{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceCancelled, InvoiceRefunded},
	}
}
