// Package scheduler runs periodic maintenance: purging stored results that
// have aged past the retention window.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/JustinTDCT/SkipVault/internal/cache"
	"github.com/JustinTDCT/SkipVault/internal/repository"
)

type Scheduler struct {
	cron      *cron.Cron
	results   *repository.ResultRepository
	cache     *cache.Cache
	retention time.Duration
}

func New(results *repository.ResultRepository, c *cache.Cache, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		results:   results,
		cache:     c,
		retention: retention,
	}
}

// Start registers the janitor on the given cron schedule and begins running.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.purgeExpired); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Scheduler: janitor running on schedule %q, retention %s", schedule, s.retention)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeExpired() {
	cutoff := time.Now().Add(-s.retention)
	n, err := s.results.PurgeOlderThan(cutoff)
	if err != nil {
		log.Printf("Scheduler: purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Scheduler: purged %d expired results", n)
	}

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if entries, err := s.cache.Count(ctx); err == nil {
			log.Printf("Scheduler: %d live cache entries", entries)
		}
	}
}
