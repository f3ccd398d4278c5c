package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CronService schedules the quarantine sweep on the configured cadence
type CronService struct {
	cron       *cron.Cron
	quarantine *QuarantineService
	schedule   string
}

// NewCronService creates a new cron service
func NewCronService(quarantine *QuarantineService, schedule string) *CronService {
	return &CronService{
		cron:       cron.New(),
		quarantine: quarantine,
		schedule:   schedule,
	}
}

// Start registers the sweep and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.quarantine.Sweep(context.Background()); err != nil {
			log.Printf("❌ Scheduled sweep error: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 Sweep scheduled [%s]", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Sweep scheduler stopped")
}
