package notes

import (
	"context"
	"fmt"

	"github.com/kotche/smartnotes/internal/model"
)

func (d *DefaultRepository) FolderExists(ctx context.Context, folderID model.FolderID, userID model.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM folders WHERE id = $1 AND user_id = $2)`
	err := d.db.QueryRowContext(ctx, query, folderID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to get folder '%d' exists: %w", folderID, err)
	}
	return exists, nil
}

func (d *DefaultRepository) CreateFolder(ctx context.Context, folder model.Folder) (model.FolderID, error) {
	query := `INSERT INTO folders (name, parent_id, user_id, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id`

	var folderID model.FolderID
	err := d.db.QueryRowContext(ctx, query, folder.Name, folder.ParentID, folder.UserID).Scan(&folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to create folder: %w", err)
	}

	return folderID, nil
}

func (d *DefaultRepository) ListFolders(ctx context.Context, userID model.UserID) ([]model.Folder, error) {
	query := `SELECT id, name, parent_id, user_id, created_at FROM folders WHERE user_id = $1 ORDER BY name`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var folder model.Folder
		if err = rows.Scan(&folder.ID, &folder.Name, &folder.ParentID, &folder.UserID, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

func (d *DefaultRepository) DeleteFolder(ctx context.Context, folderID model.FolderID, userID model.UserID) error {
	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

	result, err := d.db.ExecContext(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder '%d' for user '%d': %w", folderID, userID, err)
	}

	return checkAffected(result, model.ErrFolderNotFound)
}
