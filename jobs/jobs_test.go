package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stridefoot/footwear-erp-api/logger"
)

type mockPurger struct {
	mock.Mock
}

func (m *mockPurger) PurgeUnlinked(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(olderThan)
	return args.Int(0), args.Error(1)
}

func TestUnlinkedDocumentJob_RunOnce(t *testing.T) {
	purger := new(mockPurger)
	purger.On("PurgeUnlinked", 24*time.Hour).Return(2, nil).Once()
	purger.On("PurgeUnlinked", 24*time.Hour).Return(0, errors.New("database is locked")).Once()

	job := NewUnlinkedDocumentJob(purger, 24*time.Hour, "0 */15 * * * *", logger.NewNop())
	job.RunOnce()
	job.RunOnce()

	purger.AssertExpectations(t)
}

func TestUnlinkedDocumentJob_InvalidSchedule(t *testing.T) {
	job := NewUnlinkedDocumentJob(new(mockPurger), time.Hour, "every now and then", logger.NewNop())
	assert.Error(t, job.Start())

	manager := NewJobManager(new(mockPurger), time.Hour, "not a schedule", logger.NewNop())
	assert.Error(t, manager.StartAll())
}

// countingPurger signals every sweep on a channel
type countingPurger struct {
	once  sync.Once
	swept chan struct{}
}

func (p *countingPurger) PurgeUnlinked(context.Context, time.Duration) (int, error) {
	p.once.Do(func() { close(p.swept) })
	return 0, nil
}

func TestJobManager_RunsOnSchedule(t *testing.T) {
	purger := &countingPurger{swept: make(chan struct{})}
	manager := NewJobManager(purger, time.Hour, "* * * * * *", logger.NewNop())

	require.NoError(t, manager.StartAll())
	defer manager.StopAll()

	select {
	case <-purger.swept:
	case <-time.After(3 * time.Second):
		t.Fatal("sweep did not run")
	}
}
