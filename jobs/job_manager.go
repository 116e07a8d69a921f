package jobs

import (
	"fmt"
	"time"

	"github.com/stridefoot/footwear-erp-api/logger"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	unlinkedDocumentJob *UnlinkedDocumentJob
}

func NewJobManager(purger DocumentPurger, unlinkedTTL time.Duration, sweepSchedule string, log *logger.Logger) *JobManager {
	return &JobManager{
		unlinkedDocumentJob: NewUnlinkedDocumentJob(purger, unlinkedTTL, sweepSchedule, log),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.unlinkedDocumentJob.Start(); err != nil {
		return fmt.Errorf("failed to start unlinked document job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.unlinkedDocumentJob.Stop()
}
