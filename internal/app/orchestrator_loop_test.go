package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/savekeeper/internal/domain"
)

// start runs the actor loop and waits until its timers are armed.
func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.o.Start(context.Background()))
	t.Cleanup(func() {
		if h.o.State() == StateRunning {
			_ = h.o.Stop()
		}
	})
	h.view(t)
}

// advance moves the fake clock and waits until the loop has handled every
// tick it caused.
func (h *harness) advance(t *testing.T, d time.Duration) {
	t.Helper()
	ticked := h.clock.Advance(d)
	require.Eventually(t, func() bool { return h.clock.drained(ticked) }, time.Second, time.Millisecond)
	h.view(t)
}

func (h *harness) view(t *testing.T) View {
	t.Helper()
	v, err := h.o.Snapshot(context.Background())
	require.NoError(t, err)
	return v
}

func TestLoop_SuccessExpiresToReady(t *testing.T) {
	h := newHarness(t, domain.Preferences{})
	h.putSave(t, 1)
	h.start(t)

	rec, err := h.o.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Saved "+wantEntry, rec.Message)

	h.advance(t, 4*time.Second)
	assert.Equal(t, "Saved "+wantEntry, h.view(t).Status.Message)

	h.advance(t, time.Second)
	assert.True(t, h.view(t).Status.IsReady())
}

func TestLoop_CheckResolvesOnFirstPassingPoll(t *testing.T) {
	h := newHarness(t, domain.Preferences{})
	h.start(t)

	rec, err := h.o.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.CategorySourceMissing, rec.Category)

	h.advance(t, 10*time.Second)
	st := h.view(t).Status
	assert.True(t, st.IsError, "errors with a check never time out")
	assert.Equal(t, "Error: Save file not found for Profile 1", st.Message)

	h.putSave(t, 1)
	h.advance(t, 2*time.Second)
	assert.True(t, h.view(t).Status.IsReady())
}

func TestLoop_AutosaveFiresAndReschedules(t *testing.T) {
	h := newHarness(t, domain.Preferences{IntervalMinutes: 1, Autosave: true})
	h.putSave(t, 1)
	h.proc.set(true)
	h.start(t)

	v := h.view(t)
	require.True(t, v.Liveness.Running)
	require.Equal(t, t0.Add(time.Minute), v.Schedule.NextFireAt)

	h.advance(t, time.Minute)
	v = h.view(t)
	assert.True(t, h.store.Exists(wantEntry))
	assert.Equal(t, "Saved "+wantEntry, v.Status.Message)
	assert.Equal(t, t0.Add(2*time.Minute), v.Schedule.NextFireAt)
	assert.Equal(t, "1m 0s", h.sink.lastCountdown())

	h.advance(t, time.Minute)
	v = h.view(t)
	assert.Equal(t, "File already exists: "+wantEntry, v.Status.Message)
	assert.Equal(t, domain.CategoryAlreadyExists, v.Status.Category)
	assert.Equal(t, t0.Add(3*time.Minute), v.Schedule.NextFireAt)
}

func TestLoop_LivenessFallingEdgePauses(t *testing.T) {
	h := newHarness(t, domain.Preferences{IntervalMinutes: 1, Autosave: true})
	h.proc.set(true)
	h.start(t)
	require.Equal(t, "1m 0s", h.view(t).Countdown)

	h.proc.set(false)
	h.advance(t, 2*time.Second)
	v := h.view(t)
	assert.False(t, v.Liveness.Running)
	assert.Equal(t, "", v.Countdown)
	assert.True(t, v.Schedule.Enabled)

	h.proc.set(true)
	h.advance(t, 2*time.Second)
	v = h.view(t)
	assert.True(t, v.Liveness.Running)
	assert.Equal(t, t0.Add(4*time.Second+time.Minute), v.Schedule.NextFireAt)
}

func TestLoop_HourlySweepAndDebugTicks(t *testing.T) {
	h := newHarness(t, domain.Preferences{AutoClean: true, RetentionDays: 7})
	h.start(t)

	h.store.put(wantEntry, []byte("x"), t0.Add(-8*24*time.Hour))
	h.store.put("favourite.jkr", []byte("x"), t0.Add(-30*24*time.Hour))

	h.advance(t, time.Hour)
	v := h.view(t)
	assert.Equal(t, []string{"favourite.jkr"}, v.Entries)
	assert.Equal(t, "Cleaned 1 old save(s)", v.Status.Message)

	_, err := h.o.SetDebugView(context.Background(), true)
	require.NoError(t, err)
	before := len(h.sink.debugLines())

	h.advance(t, time.Second)
	lines := h.sink.debugLines()
	require.Greater(t, len(lines), before)
	assert.True(t, strings.Contains(lines[len(lines)-1], "running=false"), lines[len(lines)-1])
}
