package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/kotche/smartnotes/infrastructure/tracing"
	"github.com/kotche/smartnotes/internal/model"
)

type DefaultRepository struct {
	db *sql.DB
}

func NewDefaultRepository(pg *sql.DB) *DefaultRepository {
	return &DefaultRepository{pg}
}

const noteColumns = `id, user_id, folder_id, title, content, is_markdown, is_pinned, is_public,
		color, image_url, reminder_at, reminder_sent, created_at, updated_at, deleted_at`

func (d *DefaultRepository) CreateNote(ctx context.Context, note model.Note) (model.NoteID, error) {
	query := `
		INSERT INTO notes (user_id, folder_id, title, content, is_markdown, is_pinned, is_public,
			color, image_url, reminder_at, reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, NOW(), NOW())
		RETURNING id
	`

	var noteID model.NoteID
	err := d.db.QueryRowContext(ctx, query,
		note.UserID, note.FolderID, note.Title, note.Content, note.IsMarkdown,
		note.IsPinned, note.IsPublic, note.Color, note.ImageURL, note.ReminderAt,
	).Scan(&noteID)
	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	return noteID, nil
}

func (d *DefaultRepository) GetNote(ctx context.Context, noteID model.NoteID) (*model.Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM notes WHERE id = $1`, noteColumns)

	note, err := scanNote(d.db.QueryRowContext(ctx, query, noteID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note '%d': %w", noteID, err)
	}

	if err = d.attachTags(ctx, []*model.Note{note}); err != nil {
		return nil, err
	}

	return note, nil
}

func (d *DefaultRepository) ListNotes(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "ListNotes_repo")
	defer span.End()

	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"folder_id",
			"title",
			"content",
			"is_markdown",
			"is_pinned",
			"is_public",
			"color",
			"image_url",
			"reminder_at",
			"reminder_sent",
			"created_at",
			"updated_at",
			"deleted_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		Where("deleted_at IS NULL")

	if folderID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"folder_id": *folderID})
	}

	queryBuilder = queryBuilder.OrderBy("is_pinned DESC, updated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return d.queryNotes(ctx, queryBuilder)
}

func (d *DefaultRepository) ListSharedNotes(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error) {
	queryBuilder := squirrel.
		Select("n.id",
			"n.user_id",
			"n.folder_id",
			"n.title",
			"n.content",
			"n.is_markdown",
			"n.is_pinned",
			"n.is_public",
			"n.color",
			"n.image_url",
			"n.reminder_at",
			"n.reminder_sent",
			"n.created_at",
			"n.updated_at",
			"n.deleted_at").
		From("notes n").
		Join("note_shares ns ON ns.note_id = n.id").
		Where(squirrel.Eq{"ns.shared_with_user_id": userID, "ns.status": model.ShareStatusAccepted}).
		Where("n.deleted_at IS NULL")

	if folderID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"n.folder_id": *folderID})
	}

	queryBuilder = queryBuilder.OrderBy("n.updated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return d.queryNotes(ctx, queryBuilder)
}

func (d *DefaultRepository) NoteSharedWith(ctx context.Context, noteID model.NoteID, userID model.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM note_shares WHERE note_id = $1 AND shared_with_user_id = $2 AND status = $3)`
	err := d.db.QueryRowContext(ctx, query, noteID, userID, model.ShareStatusAccepted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to get share for note '%d' and user '%d': %w", noteID, userID, err)
	}
	return exists, nil
}

func (d *DefaultRepository) ListTrash(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"folder_id",
			"title",
			"content",
			"is_markdown",
			"is_pinned",
			"is_public",
			"color",
			"image_url",
			"reminder_at",
			"reminder_sent",
			"created_at",
			"updated_at",
			"deleted_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		Where("deleted_at IS NOT NULL").
		OrderBy("deleted_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return d.queryNotes(ctx, queryBuilder)
}

func (d *DefaultRepository) UpdateNote(ctx context.Context, note model.Note) error {
	query := `
		UPDATE notes
		SET folder_id = $1, title = $2, content = $3, is_markdown = $4, is_pinned = $5,
			is_public = $6, color = $7, image_url = $8, reminder_at = $9, reminder_sent = $10,
			updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
	`

	result, err := d.db.ExecContext(ctx, query,
		note.FolderID, note.Title, note.Content, note.IsMarkdown, note.IsPinned,
		note.IsPublic, note.Color, note.ImageURL, note.ReminderAt, note.ReminderSent,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note '%d': %w", note.ID, err)
	}

	return checkAffected(result, model.ErrNoteNotFound)
}

func (d *DefaultRepository) SoftDeleteNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	query := `UPDATE notes SET deleted_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	result, err := d.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note '%d' for user '%d': %w", noteID, userID, err)
	}

	return checkAffected(result, model.ErrNoteNotFound)
}

func (d *DefaultRepository) RestoreNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	query := `UPDATE notes SET deleted_at = NULL WHERE id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`

	result, err := d.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to restore note '%d' for user '%d': %w", noteID, userID, err)
	}

	return checkAffected(result, model.ErrNoteNotFound)
}

func (d *DefaultRepository) ForceDeleteNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	result, err := d.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to force delete note '%d' for user '%d': %w", noteID, userID, err)
	}

	return checkAffected(result, model.ErrNoteNotFound)
}

// PurgeTrash permanently removes notes that have been in the trash
// longer than the retention window.
func (d *DefaultRepository) PurgeTrash(ctx context.Context, olderThan time.Time) error {
	query := `DELETE FROM notes WHERE deleted_at IS NOT NULL AND deleted_at < $1`

	if _, err := d.db.ExecContext(ctx, query, olderThan); err != nil {
		return fmt.Errorf("failed to purge trash: %w", err)
	}

	return nil
}

func (d *DefaultRepository) SearchNotes(ctx context.Context, userID model.UserID, query string, limit uint64) ([]model.Note, error) {
	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"folder_id",
			"title",
			"content",
			"is_markdown",
			"is_pinned",
			"is_public",
			"color",
			"image_url",
			"reminder_at",
			"reminder_sent",
			"created_at",
			"updated_at",
			"deleted_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		Where("search_vector @@ websearch_to_tsquery('english', ?)", query).
		OrderBy("updated_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	return d.queryNotes(ctx, queryBuilder)
}

func (d *DefaultRepository) queryNotes(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]model.Note, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var result []model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		result = append(result, *note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	pointers := make([]*model.Note, len(result))
	for i := range result {
		pointers[i] = &result[i]
	}
	if err = d.attachTags(ctx, pointers); err != nil {
		return nil, err
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	note := &model.Note{}
	err := row.Scan(
		&note.ID, &note.UserID, &note.FolderID, &note.Title, &note.Content,
		&note.IsMarkdown, &note.IsPinned, &note.IsPublic, &note.Color, &note.ImageURL,
		&note.ReminderAt, &note.ReminderSent, &note.CreatedAt, &note.UpdatedAt, &note.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func checkAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
