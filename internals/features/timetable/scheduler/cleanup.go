package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	ws "planova_backend/internals/features/timetable/workspace/service"
)

type CleanupConfig struct {
	CronSchedule  string
	IdleTTL       time.Duration
	RetentionDays int
}

// HistoryPurger is the slice of the history repository the cleanup needs.
type HistoryPurger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// StartCleanupScheduler evicts idle workspaces and, when a purger is given,
// removes history older than the retention window. Call Stop on the returned
// cron during shutdown.
func StartCleanupScheduler(store *ws.Store, history HistoryPurger, cfg CleanupConfig) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.CronSchedule, func() {
		RunCleanup(context.Background(), store, history, cfg)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[CRON] started schedule=%q idle_ttl=%s retention=%dd history=%v",
		cfg.CronSchedule, cfg.IdleTTL, cfg.RetentionDays, history != nil)
	c.Start()
	return c, nil
}

// RunCleanup is one tick of the scheduler.
func RunCleanup(ctx context.Context, store *ws.Store, history HistoryPurger, cfg CleanupConfig) {
	if n := store.Sweep(cfg.IdleTTL); n > 0 {
		log.Printf("[CRON] evicted %d idle workspaces, %d left", n, store.Len())
	}

	if history == nil || cfg.RetentionDays <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	before := time.Now().Add(-time.Duration(cfg.RetentionDays) * 24 * time.Hour)
	n, err := history.Purge(ctx, before)
	if err != nil {
		log.Printf("[CRON] history purge error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[CRON] purged %d timetable histories older than %s", n, before.Format(time.RFC3339))
	}
}
