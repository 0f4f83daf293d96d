package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmaster/internal/models"
	"hostmaster/internal/renewal"
	"hostmaster/internal/services"
	"hostmaster/internal/store"
)

// Handler holds service dependencies
type Handler struct {
	db        *gorm.DB
	records   *store.RecordStore
	settings  *store.SettingsStore
	team      *store.TeamStore
	center    *services.NotificationCenter
	monitor   *services.MonitorService
	invoicer  *services.InvoiceService
	assistant *services.AssistantService
	mailer    *services.MailerService
	auth      *services.AuthService
}

// NewHandler creates a new API handler
func NewHandler(
	db *gorm.DB,
	records *store.RecordStore,
	settings *store.SettingsStore,
	team *store.TeamStore,
	center *services.NotificationCenter,
	monitor *services.MonitorService,
	invoicer *services.InvoiceService,
	assistant *services.AssistantService,
	mailer *services.MailerService,
	auth *services.AuthService,
) *Handler {
	return &Handler{
		db:        db,
		records:   records,
		settings:  settings,
		team:      team,
		center:    center,
		monitor:   monitor,
		invoicer:  invoicer,
		assistant: assistant,
		mailer:    mailer,
		auth:      auth,
	}
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api/v1")
	{
		// Authentication (tokens are issued but not enforced on data routes)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/validate", handler.ValidateToken)
		api.POST("/auth/change-password", handler.ChangePassword)

		// Hosting records
		api.GET("/records", handler.ListRecords)
		api.POST("/records", handler.CreateRecord)
		api.GET("/records/:id", handler.GetRecord)
		api.PUT("/records/:id", handler.UpdateRecord)
		api.DELETE("/records/:id", handler.DeleteRecord)
		api.POST("/records/import", handler.ImportRecords)

		// Billing
		api.POST("/invoices/generate", handler.GenerateInvoices)

		// Dashboard statistics
		api.GET("/dashboard/stats", handler.GetStats)
		api.GET("/dashboard/expiring", handler.GetExpiring)

		// Notifications
		api.GET("/notifications", handler.ListNotifications)
		api.POST("/notifications/generate", handler.GenerateNotifications)
		api.PUT("/notifications/:id/read", handler.MarkNotificationRead)
		api.POST("/notifications/read-all", handler.MarkAllNotificationsRead)

		// Settings and dropdown options
		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)
		api.GET("/options", handler.GetOptions)
		api.PUT("/options", handler.UpdateOptions)

		// AI assistant
		api.POST("/assistant/query", handler.AskAssistant)

		// Email relay
		api.POST("/email/send", handler.SendEmail)

		// Team members
		api.GET("/team", handler.ListTeam)
		api.POST("/team", handler.AddTeamMember)
		api.DELETE("/team/:id", handler.RemoveTeamMember)
	}
}

// ListRecords retrieves all hosting records
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.records.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// CreateRecord adds a new hosting record
func (h *Handler) CreateRecord(c *gin.Context) {
	var rec models.HostingRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.records.Create(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetRecord retrieves a single hosting record
func (h *Handler) GetRecord(c *gin.Context) {
	rec, err := h.records.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// UpdateRecord merges partial fields onto a hosting record. Editing the
// payment status to Paid triggers the renewal extension: the renewal date
// moves forward one year and the record reactivates.
func (h *Handler) UpdateRecord(c *gin.Context) {
	rec, err := h.records.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	prevStatus := rec.PaymentStatus

	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus := rec.PaymentStatus
	rec.PaymentStatus = prevStatus
	rec = renewal.ApplyPayment(rec, newStatus)

	if err := h.records.Save(rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// DeleteRecord removes a hosting record
func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

// ImportRecords imports multiple hosting records
func (h *Handler) ImportRecords(c *gin.Context) {
	var request struct {
		Records []models.HostingRecord `json:"records"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported, err := h.records.Import(request.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(request.Records),
		"imported": imported,
	})
}

// GenerateInvoices runs the auto-invoice batch
func (h *Handler) GenerateInvoices(c *gin.Context) {
	stamped, err := h.invoicer.Run(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated": stamped})
}

// GetStats retrieves dashboard statistics
func (h *Handler) GetStats(c *gin.Context) {
	records, err := h.records.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	var totalRevenue float64
	pendingPayments := 0
	upcomingRenewals := 0
	statusCounts := map[string]int{
		models.PaymentPaid:    0,
		models.PaymentUnpaid:  0,
		models.PaymentOverdue: 0,
	}

	for _, rec := range records {
		totalRevenue += rec.Amount
		if rec.PaymentStatus == models.PaymentUnpaid || rec.PaymentStatus == models.PaymentOverdue {
			pendingPayments++
		}
		if renewal.Classify(&rec, now) == renewal.Upcoming {
			upcomingRenewals++
		}
		if _, ok := statusCounts[rec.PaymentStatus]; ok {
			statusCounts[rec.PaymentStatus]++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients":     len(records),
		"total_revenue":     totalRevenue,
		"pending_payments":  pendingPayments,
		"upcoming_renewals": upcomingRenewals,
		"payment_status":    statusCounts,
	})
}

// GetExpiring retrieves up to 10 records with upcoming renewals, soonest
// first
func (h *Handler) GetExpiring(c *gin.Context) {
	records, err := h.records.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	type expiring struct {
		models.HostingRecord
		DaysRemaining int `json:"daysRemaining"`
	}

	var out []expiring
	for _, rec := range records {
		if renewal.Classify(&rec, now) != renewal.Upcoming {
			continue
		}
		days, _ := renewal.DaysToRenewal(rec.ValidationDate, now)
		out = append(out, expiring{HostingRecord: rec, DaysRemaining: days})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	if len(out) > 10 {
		out = out[:10]
	}

	c.JSON(http.StatusOK, out)
}

// ListNotifications retrieves retained notifications, newest first
func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.center.List(),
		"unread":        h.center.UnreadCount(),
	})
}

// GenerateNotifications runs an on-demand renewal sweep
func (h *Handler) GenerateNotifications(c *gin.Context) {
	emitted, err := h.monitor.Sweep(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emitted": emitted})
}

// MarkNotificationRead marks one notification read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	h.center.MarkRead(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllNotificationsRead marks every notification read
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	h.center.MarkAllRead()
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// GetSettings retrieves app settings
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges partial fields onto app settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.UpdateSettings(partial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetOptions retrieves dropdown options
func (h *Handler) GetOptions(c *gin.Context) {
	options, err := h.settings.Options()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}

// UpdateOptions merges partial lists onto dropdown options
func (h *Handler) UpdateOptions(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options, err := h.settings.UpdateOptions(partial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}

// AskAssistant forwards a user query to the AI assistant
func (h *Handler) AskAssistant(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must not be empty"})
		return
	}

	records, err := h.records.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	answer := h.assistant.Ask(c.Request.Context(), req.Query, records)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// SendEmail relays one email through the posted SMTP configuration
func (h *Handler) SendEmail(c *gin.Context) {
	var req struct {
		To      []string            `json:"to" binding:"required"`
		Subject string              `json:"subject"`
		Body    string              `json:"body"`
		Config  services.SMTPConfig `json:"config"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mailer.Send(req.Config, req.To, req.Subject, req.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

// ListTeam retrieves all team members
func (h *Handler) ListTeam(c *gin.Context) {
	members, err := h.team.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddTeamMember adds a team member
func (h *Handler) AddTeamMember(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.team.Add(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, added)
}

// RemoveTeamMember deletes a team member
func (h *Handler) RemoveTeamMember(c *gin.Context) {
	if err := h.team.Remove(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	// Find user by username
	var user models.User
	if err := h.db.Where("username = ?", loginReq.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// Check if account is active
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
		return
	}

	// Verify password
	if !h.auth.CheckPassword(user.Password, loginReq.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// Generate JWT token
	token, err := h.auth.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ValidateToken validates JWT token
func (h *Handler) ValidateToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token must not be empty"})
		return
	}

	claims, err := h.auth.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		},
	})
}

// ChangePassword handles password change
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required"`
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	// Validate new password length
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters"})
		return
	}

	// Find user by username
	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or old password"})
		return
	}

	// Verify old password
	if !h.auth.CheckPassword(user.Password, req.OldPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or old password"})
		return
	}

	// Hash new password
	hashedPassword, err := h.auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// Update password
	user.Password = hashedPassword
	user.UpdatedAt = time.Now()

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed, please log in with the new password"})
}
