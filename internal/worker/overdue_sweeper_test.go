package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarker struct {
	n     int64
	err   error
	calls int
}

func (m *stubMarker) SweepOverdue(context.Context) (int64, error) {
	m.calls++
	return m.n, m.err
}

func TestNewOverdueSweeper_RejectsBadSchedule(t *testing.T) {
	_, err := NewOverdueSweeper("every tuesday", &stubMarker{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestOverdueSweeper_RunOnce(t *testing.T) {
	marker := &stubMarker{n: 4}
	s, err := NewOverdueSweeper("@hourly", marker, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, int64(4), s.RunOnce(context.Background()))

	marker.err = errors.New("db down")
	assert.Zero(t, s.RunOnce(context.Background()))
	assert.Equal(t, 2, marker.calls)
}

func TestOverdueSweeper_StartStop(t *testing.T) {
	s, err := NewOverdueSweeper("0 1 * * *", &stubMarker{}, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	<-s.Stop().Done()
}
