package app

import (
	"fmt"
	"time"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// StatusController owns the single status slot. Success records and errors
// without a resolution check expire to Ready after timeout. Errors with a
// check persist until the check passes.
type StatusController struct {
	timeout  time.Duration
	logger   ports.Logger
	current  domain.StatusRecord
	expireAt time.Time
}

// NewStatusController creates a controller showing Ready.
func NewStatusController(timeout time.Duration, logger ports.Logger, now time.Time) *StatusController {
	return &StatusController{
		timeout: timeout,
		logger:  logger,
		current: domain.Ready(now),
	}
}

// Current returns the status record on display.
func (c *StatusController) Current() domain.StatusRecord {
	return c.current
}

// ExpireAt returns when the current record reverts to Ready, if it does.
func (c *StatusController) ExpireAt() (time.Time, bool) {
	return c.expireAt, !c.expireAt.IsZero()
}

// Pending reports whether a resolution check is being polled.
func (c *StatusController) Pending() bool {
	return c.current.Resolution != nil
}

// ReportSuccess replaces the slot with message and restarts the expiry.
func (c *StatusController) ReportSuccess(message string, now time.Time) domain.StatusRecord {
	return c.ReportNotice(message, domain.CategoryNone, now)
}

// ReportNotice is ReportSuccess for informational outcomes that carry a
// category, such as an archive entry that already exists.
func (c *StatusController) ReportNotice(message string, cat domain.Category, now time.Time) domain.StatusRecord {
	c.current = domain.StatusRecord{Message: message, Category: cat, CreatedAt: now}
	c.expireAt = now.Add(c.timeout)
	return c.current
}

// ReportError replaces the slot with an error. attention is true unless the
// same error is already showing.
func (c *StatusController) ReportError(message string, cat domain.Category, check domain.ResolutionCheck, now time.Time) (rec domain.StatusRecord, attention bool) {
	attention = !(c.current.IsError && c.current.Message == message && c.current.Category == cat)

	c.current = domain.StatusRecord{
		Message:    message,
		IsError:    true,
		Category:   cat,
		CreatedAt:  now,
		Resolution: check,
	}
	if check == nil {
		c.expireAt = now.Add(c.timeout)
	} else {
		c.expireAt = time.Time{}
	}
	return c.current, attention
}

// Expire reverts to Ready if the expiry has passed.
func (c *StatusController) Expire(now time.Time) bool {
	if c.expireAt.IsZero() || now.Before(c.expireAt) {
		return false
	}
	c.reset(now)
	return true
}

// Resolve evaluates the pending check once. The first true result resets the
// slot; errors and panics count as unresolved.
func (c *StatusController) Resolve(now time.Time) bool {
	check := c.current.Resolution
	if check == nil {
		return false
	}
	if !c.evaluate(check) {
		return false
	}
	c.logger.Debug("status resolved by check", ports.String("message", c.current.Message))
	c.reset(now)
	return true
}

// ResolveCategory clears an active error of category cat. It is used for
// UI edges such as a single selection or a valid interval.
func (c *StatusController) ResolveCategory(cat domain.Category, now time.Time) bool {
	if !c.current.IsError || c.current.Category != cat {
		return false
	}
	c.reset(now)
	return true
}

func (c *StatusController) evaluate(check domain.ResolutionCheck) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("resolution check panicked", ports.String("panic", fmt.Sprint(r)))
			ok = false
		}
	}()

	ok, err := check()
	if err != nil {
		c.logger.Debug("resolution check failed", ports.Err(err))
		return false
	}
	return ok
}

func (c *StatusController) reset(now time.Time) {
	c.current = domain.Ready(now)
	c.expireAt = time.Time{}
}
