package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleWindowID(t *testing.T) {
	base := time.Unix(0, 0).UTC()
	tests := []struct {
		name     string
		offset   time.Duration
		duration time.Duration
		want     int64
	}{
		{"start of window", 0, 3 * time.Second, 0},
		{"mid window", 2 * time.Second, 3 * time.Second, 0},
		{"boundary rolls to next window", 3 * time.Second, 3 * time.Second, 1},
		{"negative offset floors down", -1 * time.Second, 3 * time.Second, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("cpu", 1, base.Add(tt.offset))
			assert.Equal(t, tt.want, s.WindowID(tt.duration))
		})
	}
}

func TestPeriodJoin(t *testing.T) {
	t0 := time.Unix(0, 0).UTC()
	a, err := NewPeriod(t0, t0.Add(time.Second))
	require.NoError(t, err)
	b, err := NewPeriod(t0.Add(500*time.Millisecond), t0.Add(2*time.Second))
	require.NoError(t, err)

	joined := Join(a, b)
	assert.Equal(t, t0, joined.Start)
	assert.Equal(t, t0.Add(2*time.Second), joined.End)

	assert.Equal(t, a, Join(Empty, a))
	assert.Equal(t, a, Join(a, Empty))
	assert.True(t, Join(Empty, Empty).IsEmpty())
}

func TestNewPeriodRejectsInverted(t *testing.T) {
	t0 := time.Unix(0, 0).UTC()
	_, err := NewPeriod(t0, t0.Add(-time.Second))
	require.Error(t, err)
	var orderErr *PeriodOrderError
	require.ErrorAs(t, err, &orderErr)
}

func TestInstant(t *testing.T) {
	t0 := time.Unix(10, 0).UTC()
	p := Instant(t0)
	assert.Equal(t, t0, p.Start)
	assert.Equal(t, t0, p.End)
	assert.Equal(t, time.Duration(0), p.Duration())
}
