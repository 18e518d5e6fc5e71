package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kotche/smartnotes/infrastructure/tracing"
	"github.com/kotche/smartnotes/internal/model"
)

// DueReminders returns notes whose reminder time has passed and which have
// not been notified yet, joined with the owner for the delivery address.
// The query itself is the scanner's checkpoint: state survives restarts
// because the due set is re-derived from the rows every cycle.
func (d *DefaultRepository) DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	ctx, span := tracing.StartSpan(ctx, "DueReminders_repo")
	defer span.End()

	queryBuilder := squirrel.
		Select("n.id",
			"n.title",
			"n.content",
			"n.reminder_at",
			"u.email",
			"u.username").
		From("notes n").
		Join("users u ON u.id = n.user_id").
		Where("n.reminder_at IS NOT NULL").
		Where("n.reminder_at <= ?", now.UTC()).
		Where(squirrel.Eq{"n.reminder_sent": false}).
		Where("n.deleted_at IS NULL").
		OrderBy("n.reminder_at").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var r model.Reminder
		if err = rows.Scan(&r.NoteID, &r.Title, &r.Content, &r.ReminderAt, &r.OwnerEmail, &r.OwnerName); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// MarkReminderSent records delivery for the note's current reminder.
// The transition is one-directional: the scanner never resets the flag.
func (d *DefaultRepository) MarkReminderSent(ctx context.Context, noteID model.NoteID) error {
	query := `UPDATE notes SET reminder_sent = true WHERE id = $1`

	if _, err := d.db.ExecContext(ctx, query, noteID); err != nil {
		return fmt.Errorf("failed to mark reminder sent for note '%d': %w", noteID, err)
	}

	return nil
}
