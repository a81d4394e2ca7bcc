package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/savekeeper/internal/domain"
)

func newStatus() *StatusController {
	return NewStatusController(5*time.Second, mockLogger{}, t0)
}

func TestStatus_StartsReady(t *testing.T) {
	c := newStatus()
	assert.True(t, c.Current().IsReady())
	_, ok := c.ExpireAt()
	assert.False(t, ok)
}

func TestStatus_ErrorWithoutCheckExpiresAfterTimeout(t *testing.T) {
	c := newStatus()
	rec, attention := c.ReportError("Error: boom", domain.CategoryIOFailure, nil, t0)
	assert.True(t, rec.IsError)
	assert.True(t, attention)

	assert.False(t, c.Expire(t0.Add(5*time.Second-time.Millisecond)))
	assert.True(t, c.Current().IsError)

	assert.True(t, c.Expire(t0.Add(5*time.Second)))
	assert.True(t, c.Current().IsReady())
}

func TestStatus_SuccessRestartsExpiry(t *testing.T) {
	c := newStatus()
	c.ReportSuccess("Saved a", t0)
	c.ReportSuccess("Saved b", t0.Add(3*time.Second))

	assert.False(t, c.Expire(t0.Add(5*time.Second)))
	assert.Equal(t, "Saved b", c.Current().Message)
	assert.True(t, c.Expire(t0.Add(8*time.Second)))
	assert.True(t, c.Current().IsReady())
}

func TestStatus_ErrorWithCheckNeverTimesOut(t *testing.T) {
	c := newStatus()
	resolved := false
	calls := 0
	check := func() (bool, error) {
		calls++
		return resolved, nil
	}

	c.ReportError("Error: Save file not found for Profile 1", domain.CategorySourceMissing, check, t0)
	assert.True(t, c.Pending())
	assert.False(t, c.Expire(t0.Add(time.Hour)))

	assert.False(t, c.Resolve(t0.Add(2*time.Second)))
	assert.True(t, c.Current().IsError)

	resolved = true
	assert.True(t, c.Resolve(t0.Add(4*time.Second)))
	assert.True(t, c.Current().IsReady())
	assert.False(t, c.Pending())

	assert.False(t, c.Resolve(t0.Add(6*time.Second)), "check is not re-evaluated")
	assert.Equal(t, 2, calls)
}

func TestStatus_CheckFailuresCountAsUnresolved(t *testing.T) {
	c := newStatus()
	c.ReportError("Error: x", domain.CategorySourceMissing, func() (bool, error) {
		return true, errors.New("stat failed")
	}, t0)
	assert.False(t, c.Resolve(t0))
	assert.True(t, c.Current().IsError)

	c.ReportError("Error: y", domain.CategorySourceMissing, func() (bool, error) {
		panic("boom")
	}, t0)
	require.NotPanics(t, func() { assert.False(t, c.Resolve(t0)) })
	assert.True(t, c.Current().IsError)
}

func TestStatus_NewReportDiscardsCheck(t *testing.T) {
	c := newStatus()
	c.ReportError("Error: x", domain.CategorySourceMissing, func() (bool, error) { return true, nil }, t0)
	c.ReportSuccess("Saved a", t0.Add(time.Second))

	assert.False(t, c.Pending())
	assert.False(t, c.Resolve(t0.Add(2*time.Second)))
	assert.Equal(t, "Saved a", c.Current().Message)
}

func TestStatus_AttentionOnlyOnFirstReport(t *testing.T) {
	c := newStatus()
	_, first := c.ReportError("Error: x", domain.CategorySelection, nil, t0)
	_, again := c.ReportError("Error: x", domain.CategorySelection, nil, t0.Add(time.Second))
	_, other := c.ReportError("Error: y", domain.CategorySelection, nil, t0.Add(2*time.Second))

	assert.True(t, first)
	assert.False(t, again)
	assert.True(t, other)
}

func TestStatus_ResolveCategory(t *testing.T) {
	c := newStatus()
	c.ReportError("Error: Please select a save file to load", domain.CategorySelection, nil, t0)

	assert.False(t, c.ResolveCategory(domain.CategoryInvalidInterval, t0))
	assert.True(t, c.Current().IsError)

	assert.True(t, c.ResolveCategory(domain.CategorySelection, t0))
	assert.True(t, c.Current().IsReady())

	c.ReportSuccess("Saved a", t0)
	assert.False(t, c.ResolveCategory(domain.CategoryNone, t0), "success records are not errors")
}
