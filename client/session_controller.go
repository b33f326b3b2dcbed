package client

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bloomtrack/utils"
)

// User-visible error strings for the primary session fetch. Weekly-summary
// failures are silent: the summary is best-effort.
const (
	errSessionNotFound   = "Session not found"
	errSessionLoadFailed = "Failed to load session"
)

// DefaultFallbackDelay is how long ForceSchedule waits for a completion
// signal before fetching on its own.
const DefaultFallbackDelay = 90 * time.Second

// SessionSyncController owns one selected date and keeps its SessionView and
// weekly summary fresh across explicit date changes, manual refetches, and
// completion signals arriving on the push channel. In-flight fetches are
// tagged with the date they were issued for; results for a date that is no
// longer active are discarded, which stands in for network cancellation.
type SessionSyncController struct {
	api           SessionAPI
	push          PushChannel
	fallbackDelay time.Duration

	mu       sync.Mutex
	date     string
	session  *SessionView
	weekly   *WeeklySummary
	inflight int
	errMsg   string

	scheduling    bool
	fallbackTimer *time.Timer
	fallbackDate  string

	justCompletedSegmentation bool
}

// NewSessionSyncController wires the controller to its two collaborators.
// fallbackDelay <= 0 selects the default 90 seconds.
func NewSessionSyncController(api SessionAPI, push PushChannel, fallbackDelay time.Duration) *SessionSyncController {
	if fallbackDelay <= 0 {
		fallbackDelay = DefaultFallbackDelay
	}
	return &SessionSyncController{api: api, push: push, fallbackDelay: fallbackDelay}
}

// SetDate switches the active date and fetches both resources for it. Calling
// it again with the date already active is a no-op, so re-renders cannot
// duplicate fetches. A date change also clears the one-shot segmentation flag
// so a stale signal can never surface a popup for the new date.
func (c *SessionSyncController) SetDate(date string) {
	c.mu.Lock()
	if date == c.date {
		c.mu.Unlock()
		return
	}
	c.date = date
	c.justCompletedSegmentation = false
	c.mu.Unlock()

	c.fetchSession(date, false)
	c.fetchWeeklySummary(date)
}

// Refetch reloads both resources for the current date.
func (c *SessionSyncController) Refetch() {
	c.mu.Lock()
	date := c.date
	c.mu.Unlock()
	if date == "" {
		return
	}
	c.fetchSession(date, false)
	c.fetchWeeklySummary(date)
}

// fetchSession GETs the session for date without blocking the caller.
// keepSegFlag preserves the one-shot segmentation flag across the refetch the
// analyser signal itself triggers; every other landing of session data clears
// it.
func (c *SessionSyncController) fetchSession(date string, keepSegFlag bool) {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()

	go func() {
		view, status, err := c.api.FetchSession(date)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.inflight--
		if date != c.date {
			return // stale: issued for a date no longer active
		}
		switch {
		case err != nil:
			c.session = nil
			c.errMsg = errSessionLoadFailed
		case status < 200 || status >= 300 || view == nil:
			c.session = nil
			c.errMsg = errSessionNotFound
		default:
			sortEvents(view.Events)
			c.session = view
			c.errMsg = ""
			if !keepSegFlag {
				c.justCompletedSegmentation = false
			}
		}
	}()
}

// fetchWeeklySummary GETs the rollup anchored to the Monday of date's week.
// Failures clear the summary silently.
func (c *SessionSyncController) fetchWeeklySummary(date string) {
	monday, err := utils.MondayOf(date)
	if err != nil {
		return
	}

	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()

	go func() {
		summary, err := c.api.FetchWeeklySummary(monday)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.inflight--
		if date != c.date {
			return
		}
		if err != nil {
			c.weekly = nil
			return
		}
		c.weekly = summary
	}()
}

// ForceSchedule sends a scheduling request for the current date over the push
// channel and arms the fallback timer. If no completion signal arrives before
// the timer fires, the controller fetches both resources itself and clears
// scheduling, so the UI never hangs on a missed or malformed notification.
func (c *SessionSyncController) ForceSchedule() error {
	if !c.push.Connected() {
		return errors.New("push channel not connected")
	}

	c.mu.Lock()
	date := c.date
	c.mu.Unlock()
	if date == "" {
		return errors.New("no date selected")
	}

	env := Envelope{
		MimeType: "text/plain",
		Data:     fmt.Sprintf("[SCHEDULER] RUN: %s", date),
		Role:     "user",
	}
	if err := c.push.Send(env); err != nil {
		return fmt.Errorf("send scheduling request: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduling = true
	c.fallbackDate = date
	if c.fallbackTimer != nil {
		c.fallbackTimer.Stop()
	}
	c.fallbackTimer = time.AfterFunc(c.fallbackDelay, func() { c.fallbackFire(date) })
	return nil
}

// fallbackFire runs when the timer expires. A timer superseded by a real
// completion, or armed for a date no longer current, is a no-op.
func (c *SessionSyncController) fallbackFire(armedFor string) {
	c.mu.Lock()
	if !c.scheduling || c.fallbackDate != armedFor || c.date != armedFor {
		c.mu.Unlock()
		return
	}
	c.scheduling = false
	c.fallbackTimer = nil
	c.mu.Unlock()

	c.fetchSession(armedFor, false)
	c.fetchWeeklySummary(armedFor)
}

// HandleFrame processes one inbound push-channel text frame. Orchestrator
// completion clears scheduling, supersedes the fallback timer and refetches
// both resources for the currently active date (not necessarily the date the
// job started for). Analyser completion sets the one-shot segmentation flag
// and refetches the session only. Anything else is expected traffic and
// ignored.
func (c *SessionSyncController) HandleFrame(raw string) {
	switch cls := Classify(raw); cls.Kind {
	case Orchestrator:
		c.mu.Lock()
		c.scheduling = false
		if c.fallbackTimer != nil {
			c.fallbackTimer.Stop()
			c.fallbackTimer = nil
		}
		date := c.date
		c.mu.Unlock()
		if date != "" {
			c.fetchSession(date, false)
			c.fetchWeeklySummary(date)
		}
	case Analyser:
		c.mu.Lock()
		c.justCompletedSegmentation = true
		date := c.date
		c.mu.Unlock()
		if date != "" {
			c.fetchSession(date, true)
		}
	}
}

// ResetSegmentationFlag clears the one-shot flag after the UI has consumed
// it.
func (c *SessionSyncController) ResetSegmentationFlag() {
	c.mu.Lock()
	c.justCompletedSegmentation = false
	c.mu.Unlock()
}

// Session returns the current session view, nil when absent or failed.
func (c *SessionSyncController) Session() *SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// WeeklySummary returns the current rollup, nil when absent.
func (c *SessionSyncController) WeeklySummary() *WeeklySummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weekly
}

// Loading reports fetch-in-flight OR scheduling: a forced scheduling run is
// presented to the UI exactly like an ordinary fetch.
func (c *SessionSyncController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0 || c.scheduling
}

// Error returns the user-visible error for the primary session fetch, empty
// when healthy.
func (c *SessionSyncController) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Scheduling reports whether a forced run is still awaiting completion.
func (c *SessionSyncController) Scheduling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scheduling
}

// JustCompletedSegmentation reports the one-shot flag.
func (c *SessionSyncController) JustCompletedSegmentation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.justCompletedSegmentation
}

// sortEvents stable-sorts calendar events ascending by numeric "HH:MM" start
// time before they are stored.
func sortEvents(events []CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return utils.ClockMinutes(events[i].StartTime) < utils.ClockMinutes(events[j].StartTime)
	})
}
