package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCloser struct {
	mock.Mock
}

func (m *mockCloser) FinishPastEvents(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

func TestCloseFinishedEventsUsesClock(t *testing.T) {
	closer := new(mockCloser)
	at := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	closer.On("FinishPastEvents", at).Return(int64(2), nil).Once()
	closer.On("FinishPastEvents", at).Return(int64(0), errors.New("db down")).Once()

	s := NewScheduler(closer, "@every 1m")
	s.now = func() time.Time { return at }

	s.closeFinishedEvents(context.Background())
	s.closeFinishedEvents(context.Background())
	closer.AssertExpectations(t)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(new(mockCloser), "not a schedule")
	assert.Error(t, s.Start(context.Background()))
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(new(mockCloser), "@every 1h")
	assert.NoError(t, s.Start(context.Background()))
	s.Stop()
}
