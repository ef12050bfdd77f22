package services

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingSweeper struct {
	calls   atomic.Int32
	removed int
	err     error
}

func (c *countingSweeper) SweepTemp(time.Duration) (int, error) {
	c.calls.Add(1)
	return c.removed, c.err
}

func TestNewSweeperService_InvalidSpec(t *testing.T) {
	_, err := NewSweeperService(&countingSweeper{}, nil, "every hour", time.Hour)
	assert.Error(t, err)
}

func TestSweeperService_RunOnce(t *testing.T) {
	sw := &countingSweeper{removed: 2}
	svc, err := NewSweeperService(sw, nil, "@every 1h", time.Hour)
	require.NoError(t, err)

	removed, err := svc.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	sw.err = errors.New("read failed")
	_, err = svc.RunOnce()
	assert.Error(t, err)
}

func TestSweeperService_Schedule(t *testing.T) {
	sw := &countingSweeper{}
	svc, err := NewSweeperService(sw, nil, "@every 1s", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.Start())
	assert.Error(t, svc.Start(), "second start must fail")

	assert.Eventually(t, func() bool { return sw.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	svc.Stop()
	svc.Stop()
}
