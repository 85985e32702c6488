package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUnreadCounter struct {
	mock.Mock
}

func (m *MockUnreadCounter) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRefreshUnread_SetsGauge(t *testing.T) {
	counter := new(MockUnreadCounter)
	counter.On("CountUnread", mock.Anything).Return(int64(4), nil)

	var got float64
	s := New(zap.NewNop(), counter, func(v float64) { got = v })
	s.RefreshUnread()

	assert.Equal(t, 4.0, got)
	counter.AssertExpectations(t)
}

func TestRefreshUnread_KeepsGaugeOnError(t *testing.T) {
	counter := new(MockUnreadCounter)
	counter.On("CountUnread", mock.Anything).Return(int64(0), errors.New("db down"))

	got := -1.0
	s := New(zap.NewNop(), counter, func(v float64) { got = v })
	s.RefreshUnread()

	assert.Equal(t, -1.0, got)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := New(zap.NewNop(), new(MockUnreadCounter), func(float64) {})
	assert.Error(t, s.Start("not a schedule"))
}

func TestStart_RunsImmediately(t *testing.T) {
	counter := new(MockUnreadCounter)
	counter.On("CountUnread", mock.Anything).Return(int64(2), nil)

	var got float64
	s := New(zap.NewNop(), counter, func(v float64) { got = v })
	require.NoError(t, s.Start("@every 1h"))
	defer s.Stop()

	assert.Equal(t, 2.0, got)
}
