package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stridefoot/footwear-erp-api/logger"
)

// DocumentPurger deletes documents left unlinked for longer than a TTL
type DocumentPurger interface {
	PurgeUnlinked(ctx context.Context, olderThan time.Duration) (int, error)
}

// UnlinkedDocumentJob periodically removes documents that were stored but
// never linked to an order, together with their files.
type UnlinkedDocumentJob struct {
	purger   DocumentPurger
	ttl      time.Duration
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	log      *logger.Logger
}

// NewUnlinkedDocumentJob creates the sweeper. schedule is a cron spec with a
// leading seconds field.
func NewUnlinkedDocumentJob(purger DocumentPurger, ttl time.Duration, schedule string, log *logger.Logger) *UnlinkedDocumentJob {
	return &UnlinkedDocumentJob{
		purger:   purger,
		ttl:      ttl,
		schedule: schedule,
		timeout:  5 * time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		log:      log.With("component", "unlinked_document_job"),
	}
}

func (j *UnlinkedDocumentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("Unlinked document job started", "schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// RunOnce performs a single sweep
func (j *UnlinkedDocumentJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	purged, err := j.purger.PurgeUnlinked(ctx, j.ttl)
	if err != nil {
		j.log.Error("Unlinked document sweep failed", "purged", purged, "error", err)
		return
	}
	if purged > 0 {
		j.log.Info("Unlinked document sweep finished", "purged", purged)
	}
}

// Stop halts the schedule and waits for a running sweep to finish
func (j *UnlinkedDocumentJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("Unlinked document job stopped")
}
