// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/state"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusFetcher returns the decoded API body for the window starting at fromDate.
type StatusFetcher interface {
	GetAPIAnswer(ctx context.Context, fromDate int64) (any, error)
}

// MessageSender delivers a chat message. Implementations swallow their own errors.
type MessageSender interface {
	Send(ctx context.Context, text string) bool
}

// PollerOptions tune the cycle behaviour.
type PollerOptions struct {
	ProcessAllHomeworks bool // false: only the first record of a response is reported
	DedupMode           DedupMode
	Now                 func() time.Time
}

// Snapshot is a read-only view of the poller state for status surfaces.
type Snapshot struct {
	FromDate         int64     `json:"from_date"`
	LastMessage      string    `json:"last_message"`
	LastErrorMessage string    `json:"last_error_message,omitempty"`
	DedupMode        DedupMode `json:"dedup_mode"`
	Cycles           uint64    `json:"cycles"`
	LastCycleID      string    `json:"last_cycle_id,omitempty"`
	LastCycleError   string    `json:"last_cycle_error,omitempty"`
	LastPollAt       time.Time `json:"last_poll_at"`
}

// Poller runs the fetch, validate, dedup and notify cycle.
// RunOnce must not be called concurrently; Snapshot is safe from any goroutine.
type Poller struct {
	api        StatusFetcher
	sender     MessageSender
	store      state.Repository
	logger     *logrus.Entry
	processAll bool
	now        func() time.Time

	// owned by the goroutine calling RunOnce
	fromDate int64
	dedup    *Deduper

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewPoller wires a Poller. store may be nil, in which case nothing is persisted.
func NewPoller(api StatusFetcher, sender MessageSender, store state.Repository, logger *logrus.Entry, opts PollerOptions) *Poller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	p := &Poller{
		api:        api,
		sender:     sender,
		store:      store,
		logger:     logger,
		processAll: opts.ProcessAllHomeworks,
		now:        now,
		fromDate:   now().Unix(),
		dedup:      NewDeduper(opts.DedupMode),
	}
	p.snapshot = Snapshot{FromDate: p.fromDate, DedupMode: p.dedup.Mode()}
	return p
}

// FailureMessage is the chat text for a failed cycle.
func FailureMessage(err error) string {
	return fmt.Sprintf("Сбой в работе программы: %v", err)
}

// Restore loads the persisted checkpoint. Without one the window starts now.
func (p *Poller) Restore(ctx context.Context) {
	if p.store == nil {
		return
	}
	cp, err := p.store.Load(ctx)
	switch {
	case errors.Is(err, state.ErrCheckpointNotFound):
		p.logger.WithField("from_date", p.fromDate).Info("No checkpoint found, starting from current time")
		return
	case err != nil:
		p.logger.WithError(err).Warn("Failed to load checkpoint, starting from current time")
		return
	}

	if cp.FromDate > 0 {
		p.fromDate = cp.FromDate
	}
	p.dedup.Restore(cp.LastMessage, cp.LastErrorMessage)
	p.publish(func(s *Snapshot) {
		s.FromDate = p.fromDate
		s.LastMessage, s.LastErrorMessage = p.lastMessages()
	})
	p.logger.WithFields(logrus.Fields{
		"from_date":  p.fromDate,
		"updated_at": cp.UpdatedAt,
	}).Info("Checkpoint restored")
}

// RunOnce executes a single poll cycle. Failures are reported to chat, never returned.
func (p *Poller) RunOnce(ctx context.Context) {
	cycleID := uuid.NewString()
	logCtx := p.logger.WithField("cycle_id", cycleID)

	err := p.poll(ctx, logCtx)
	switch {
	case err == nil:
	case errors.Is(err, homework.ErrNoUpdates):
		logCtx.Debug("No homework updates")
		err = nil
	case ctx.Err() != nil:
		logCtx.WithError(err).Info("Poll cycle interrupted by shutdown")
	default:
		logCtx.WithError(err).Error("Poll cycle failed")
		p.notify(ctx, logCtx, SlotError, FailureMessage(err))
	}

	p.saveCheckpoint(ctx, logCtx)
	p.publish(func(s *Snapshot) {
		s.FromDate = p.fromDate
		s.LastMessage, s.LastErrorMessage = p.lastMessages()
		s.Cycles++
		s.LastCycleID = cycleID
		s.LastCycleError = ""
		if err != nil {
			s.LastCycleError = err.Error()
		}
		s.LastPollAt = p.now()
	})
}

func (p *Poller) poll(ctx context.Context, logCtx *logrus.Entry) error {
	body, err := p.api.GetAPIAnswer(ctx, p.fromDate)
	if err != nil {
		return err
	}

	// The server clock decides the next window, not ours.
	if ts, ok := homework.CurrentDate(body); ok {
		p.fromDate = ts
	} else {
		logCtx.WithField("from_date", p.fromDate).Warn("Response has no usable current_date, keeping previous window")
	}

	records, err := homework.CheckResponse(body)
	if err != nil {
		if !errors.Is(err, homework.ErrNoUpdates) {
			logCtx.WithError(err).Warn("Invalid API response")
		}
		return err
	}
	logCtx.WithField("count", len(records)).Info("Received homework updates")

	if !p.processAll {
		records = records[:1]
	}
	for _, rec := range records {
		msg, err := homework.ParseStatus(rec)
		if err != nil {
			logCtx.WithError(err).Warn("Invalid homework record")
			return err
		}
		logCtx.Debug(msg)
		p.notify(ctx, logCtx, SlotStatus, msg)
	}
	return nil
}

// notify sends msg unless the slot already holds it. The slot is updated
// even when delivery fails.
func (p *Poller) notify(ctx context.Context, logCtx *logrus.Entry, slot Slot, msg string) {
	if !p.dedup.ShouldSend(slot, msg) {
		logCtx.Debug("Message equals the last one sent, skipping notification")
		return
	}
	p.sender.Send(ctx, msg)
	p.dedup.Remember(slot, msg)
}

func (p *Poller) lastMessages() (string, string) {
	status, failure := p.dedup.Last()
	if p.dedup.Mode() != DedupSplit {
		failure = ""
	}
	return status, failure
}

func (p *Poller) saveCheckpoint(ctx context.Context, logCtx *logrus.Entry) {
	if p.store == nil {
		return
	}
	status, failure := p.lastMessages()
	cp := &state.Checkpoint{
		FromDate:         p.fromDate,
		LastMessage:      status,
		LastErrorMessage: failure,
		UpdatedAt:        p.now(),
	}
	// Saving must survive a shutdown that interrupted the cycle.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.store.Save(saveCtx, cp); err != nil {
		logCtx.WithError(err).Error("Failed to save checkpoint")
	}
}

func (p *Poller) publish(update func(s *Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	update(&p.snapshot)
}

// Snapshot returns a copy of the current poller state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
