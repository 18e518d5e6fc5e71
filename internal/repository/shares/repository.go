package shares

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/kotche/smartnotes/internal/model"
)

const uniqueViolation = "23505"

type DefaultRepository struct {
	db *sql.DB
}

func NewDefaultRepository(pg *sql.DB) *DefaultRepository {
	return &DefaultRepository{pg}
}

func (d *DefaultRepository) CreateLink(ctx context.Context, link model.ShareLink) (model.ShareID, error) {
	query := `
		INSERT INTO share_links (note_id, token, is_public, expires_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var shareID model.ShareID
	err := d.db.QueryRowContext(ctx, query, link.NoteID, link.Token, link.IsPublic, link.ExpiresAt).Scan(&shareID)
	if err != nil {
		return 0, fmt.Errorf("failed to create share link: %w", err)
	}

	return shareID, nil
}

func (d *DefaultRepository) GetLinkByToken(ctx context.Context, token string) (*model.ShareLink, error) {
	query := `SELECT id, note_id, token, is_public, expires_at, created_at FROM share_links WHERE token = $1`

	link := &model.ShareLink{}
	err := d.db.QueryRowContext(ctx, query, token).
		Scan(&link.ID, &link.NoteID, &link.Token, &link.IsPublic, &link.ExpiresAt, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}

	return link, nil
}

func (d *DefaultRepository) CreateUserShare(ctx context.Context, share model.NoteShare) (model.ShareID, error) {
	query := `
		INSERT INTO note_shares (note_id, shared_by_user_id, shared_with_user_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var shareID model.ShareID
	err := d.db.QueryRowContext(ctx, query, share.NoteID, share.SharedBy, share.SharedWith, share.Status).Scan(&shareID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolation {
			return 0, model.ErrShareExists
		}
		return 0, fmt.Errorf("failed to create note share: %w", err)
	}

	return shareID, nil
}

func (d *DefaultRepository) GetUserShare(ctx context.Context, shareID model.ShareID) (*model.NoteShare, error) {
	query := `
		SELECT id, note_id, shared_by_user_id, shared_with_user_id, status, created_at, responded_at
		FROM note_shares WHERE id = $1
	`

	share := &model.NoteShare{}
	err := d.db.QueryRowContext(ctx, query, shareID).
		Scan(&share.ID, &share.NoteID, &share.SharedBy, &share.SharedWith, &share.Status, &share.CreatedAt, &share.RespondedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get note share '%d': %w", shareID, err)
	}

	return share, nil
}

func (d *DefaultRepository) ListPendingShares(ctx context.Context, userID model.UserID) ([]model.NoteShare, error) {
	query := `
		SELECT id, note_id, shared_by_user_id, shared_with_user_id, status, created_at, responded_at
		FROM note_shares
		WHERE shared_with_user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := d.db.QueryContext(ctx, query, userID, model.ShareStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending shares: %w", err)
	}
	defer rows.Close()

	var result []model.NoteShare
	for rows.Next() {
		var share model.NoteShare
		if err = rows.Scan(&share.ID, &share.NoteID, &share.SharedBy, &share.SharedWith,
			&share.Status, &share.CreatedAt, &share.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note share: %w", err)
		}
		result = append(result, share)
	}

	return result, rows.Err()
}

func (d *DefaultRepository) RespondToShare(ctx context.Context, shareID model.ShareID, userID model.UserID, status model.ShareStatus) error {
	query := `
		UPDATE note_shares SET status = $1, responded_at = NOW()
		WHERE id = $2 AND shared_with_user_id = $3 AND status = $4
	`

	result, err := d.db.ExecContext(ctx, query, status, shareID, userID, model.ShareStatusPending)
	if err != nil {
		return fmt.Errorf("failed to respond to share '%d': %w", shareID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrShareNotFound
	}

	return nil
}
