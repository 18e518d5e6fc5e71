package notes

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kotche/smartnotes/internal/model"
)

const uniqueViolation = "23505"

func (d *DefaultRepository) CreateTag(ctx context.Context, tag model.Tag) (model.TagID, error) {
	query := `INSERT INTO tags (name, user_id, created_at) VALUES ($1, $2, NOW()) RETURNING id`

	var tagID model.TagID
	err := d.db.QueryRowContext(ctx, query, tag.Name, tag.UserID).Scan(&tagID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolation {
			return 0, model.ErrTagExists
		}
		return 0, fmt.Errorf("failed to create tag: %w", err)
	}

	return tagID, nil
}

func (d *DefaultRepository) ListTags(ctx context.Context, userID model.UserID) ([]model.Tag, error) {
	query := `SELECT id, name, user_id, created_at FROM tags WHERE user_id = $1 ORDER BY name`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err = rows.Scan(&tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (d *DefaultRepository) GetTags(ctx context.Context, userID model.UserID, tagIDs []model.TagID) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	queryBuilder := squirrel.
		Select("id", "name", "user_id", "created_at").
		From("tags").
		Where(squirrel.Eq{"user_id": userID, "id": tagIDs}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err = rows.Scan(&tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (d *DefaultRepository) SetNoteTags(ctx context.Context, noteID model.NoteID, tagIDs []model.TagID) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM notes_tags WHERE note_id = $1`, noteID); err != nil {
		return fmt.Errorf("failed to clear note tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO notes_tags (note_id, tag_id) VALUES ($1, $2)`, noteID, tagID,
		); err != nil {
			return fmt.Errorf("failed to attach tag '%d' to note '%d': %w", tagID, noteID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit note tags: %w", err)
	}

	return nil
}

func (d *DefaultRepository) attachTags(ctx context.Context, notes []*model.Note) error {
	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]model.NoteID, 0, len(notes))
	for _, note := range notes {
		noteIDs = append(noteIDs, note.ID)
	}

	queryBuilder := squirrel.
		Select("nt.note_id", "t.id", "t.name", "t.user_id", "t.created_at").
		From("notes_tags nt").
		Join("tags t ON t.id = nt.tag_id").
		Where(squirrel.Eq{"nt.note_id": noteIDs}).
		OrderBy("t.name").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query note tags: %w", err)
	}
	defer rows.Close()

	byNote := make(map[model.NoteID][]model.Tag)
	for rows.Next() {
		var (
			noteID model.NoteID
			tag    model.Tag
		)
		if err = rows.Scan(&noteID, &tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan note tag: %w", err)
		}
		byNote[noteID] = append(byNote[noteID], tag)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate note tags: %w", err)
	}

	for _, note := range notes {
		note.Tags = byNote[note.ID]
	}

	return nil
}
