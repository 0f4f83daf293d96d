package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"hostmaster/internal/services"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron           *cron.Cron
	monitorService *services.MonitorService
}

// NewScheduler creates a new scheduler
func NewScheduler(monitorService *services.MonitorService) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		monitorService: monitorService,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(checkInterval string) error {
	// Add scheduled job to sweep all records
	_, err := s.cron.AddFunc(checkInterval, func() {
		log.Println("Starting scheduled renewal sweep...")
		if _, err := s.monitorService.Sweep(time.Now()); err != nil {
			log.Printf("Scheduled sweep failed: %v", err)
		}
		log.Println("Scheduled renewal sweep completed")
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started with interval: %s", checkInterval)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}
