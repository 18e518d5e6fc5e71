package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotche/smartnotes/internal/metrics"
	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/internal/service/events"
	"github.com/kotche/smartnotes/internal/service/mail"
)

const defaultInterval = time.Minute

// NoteStore is the slice of the notes service the scanner needs: the due
// query and the sent-flag commit.
type NoteStore interface {
	DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkReminderSent(ctx context.Context, noteID model.NoteID) error
}

// Scanner is the reminder engine: it polls the store for due notes and
// delivers each one exactly once, committing the sent flag per note so a
// crash mid-cycle never loses an already-acknowledged delivery.
type Scanner struct {
	notes    NoteStore
	sender   mail.Sender
	events   events.Publisher
	interval time.Duration
	logger   zerolog.Logger
}

// New wires the scanner. events may be nil when no broker is configured.
func New(notesServ NoteStore, sender mail.Sender, publisher events.Publisher, interval time.Duration, logger zerolog.Logger) *Scanner {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scanner{
		notes:    notesServ,
		sender:   sender,
		events:   publisher,
		interval: interval,
		logger:   logger.With().Str("component", "reminder").Logger(),
	}
}

// Run blocks until ctx is cancelled. Cancellation is only observed at the
// ticker and between notes, so an in-flight delivery always finishes its
// commit before the loop exits.
func (s *Scanner) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("reminder scanner started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scanCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reminder scanner stopped")
			return
		case <-ticker.C:
			s.scanCycle(ctx)
		}
	}
}

// scanCycle runs one poll-evaluate-act iteration. Nothing raised in here
// may escape: a store outage aborts the cycle, a bad note aborts only
// that note, and the next tick starts fresh either way.
func (s *Scanner) scanCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ScanCycleErrorsCounter.Inc()
			s.logger.Error().Interface("panic", r).Msg("scan cycle panicked")
		}
	}()

	now := time.Now().UTC()

	due, err := s.notes.DueReminders(ctx, now)
	if err != nil {
		metrics.ScanCycleErrorsCounter.Inc()
		s.logger.Error().Err(err).Msg("failed to query due reminders")
		return
	}

	if len(due) == 0 {
		return
	}

	s.logger.Info().Int("count", len(due)).Msg("found due reminders")

	for _, item := range due {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.process(ctx, item); err != nil {
			metrics.ReminderFailuresCounter.Inc()
			s.logger.Error().Err(err).Int64("note_id", int64(item.NoteID)).Msg("failed to deliver reminder")
			continue
		}

		metrics.RemindersSentCounter.Inc()
		s.logger.Info().Int64("note_id", int64(item.NoteID)).Str("to", item.OwnerEmail).Msg("reminder delivered")
	}
}

// process delivers one reminder and commits the sent flag. A failure at
// any step leaves the note due, so the next cycle retries it.
func (s *Scanner) process(ctx context.Context, item model.Reminder) (err error) {
	defer func() {
		// A panic takes down this note, not the rest of the batch.
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing note '%d': %v", item.NoteID, r)
		}
	}()

	if item.OwnerEmail == "" {
		// Left due on purpose: the note stays eligible until an owner
		// with an address exists again.
		return fmt.Errorf("note '%d' has no resolvable owner email", item.NoteID)
	}

	subject, htmlBody, textBody := mail.ReminderEmail(item.OwnerName, item.Title, item.Content, item.ReminderAt.UTC())

	if !s.sender.Send(item.OwnerEmail, subject, htmlBody, textBody) {
		return fmt.Errorf("delivery to '%s' failed for note '%d'", item.OwnerEmail, item.NoteID)
	}

	if err := s.notes.MarkReminderSent(ctx, item.NoteID); err != nil {
		// The mail went out but the flag did not stick: the note will be
		// re-sent next cycle. At-least-once beats silently losing state.
		return fmt.Errorf("delivered but failed to mark note '%d' sent: %w", item.NoteID, err)
	}

	if s.events != nil {
		if err := s.events.PublishReminderSent(ctx, int64(item.NoteID), item.OwnerEmail); err != nil {
			s.logger.Warn().Err(err).Int64("note_id", int64(item.NoteID)).Msg("failed to publish reminder event")
		}
	}

	return nil
}
