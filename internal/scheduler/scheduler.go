package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"StockScout/internal/notifier"
	"StockScout/internal/screener"
	"StockScout/internal/universe"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the screener over the configured universe on a cron
// schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Universe universe.Source
	Screener *screener.Screener
	Notifier *notifier.Telegram
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src universe.Source, scr *screener.Screener, tn *notifier.Telegram) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Universe: src,
		Screener: scr,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// RegisterAll registers the periodic scan task.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scheduled scan")

	tickers, err := s.Universe.Tickers()
	if err != nil {
		log.Printf("[ERROR] resolve universe (%s): %v", s.Universe.Name(), err)
		s.trySend(fmt.Sprintf("❌ Scan aborted, universe unavailable: %v", err))
		return
	}

	result, err := s.Screener.Scan(tickers)
	if err != nil {
		log.Printf("[ERROR] scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}

	log.Printf("[INFO] scan finished: %d of %d bullish (%d skipped)",
		len(result.Matches), result.Scanned, result.Skipped)
	if len(result.Matches) > 0 {
		log.Printf("[INFO] bullish: %s", strings.Join(result.Tickers(), ", "))
	}
	s.trySend(notifier.FormatScanReport(result, s.Screener.Window))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil || !s.Notifier.Configured() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
