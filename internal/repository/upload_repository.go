package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
)

type UploadRepository interface {
	CreateUpload(ctx context.Context, record *models.UploadRecord) (uint64, error)
	GetLatestUploadForQuest(ctx context.Context, userID string, questID uint64) (*models.UploadRecord, error)
	ListUnscoredPhotoUploads(ctx context.Context) ([]*models.UnscoredUpload, error)
}

type uploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) CreateUpload(ctx context.Context, record *models.UploadRecord) (uint64, error) {
	query := `
		INSERT INTO uploads (user_id, quest_id, object_key, size, content_type, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		record.UserID, record.QuestID, record.ObjectKey,
		record.Size, record.ContentType, record.UploadedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload ID: %w", err)
	}
	return uint64(id), nil
}

// GetLatestUploadForQuest returns the most recent upload a user attached to
// a quest. Older uploads for the same pair stay in the ledger but are not
// authoritative for image resolution.
func (r *uploadRepository) GetLatestUploadForQuest(ctx context.Context, userID string, questID uint64) (*models.UploadRecord, error) {
	query := `
		SELECT id, user_id, quest_id, object_key, size, content_type, uploaded_at
		FROM uploads
		WHERE user_id = ? AND quest_id = ?
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1
	`
	record := &models.UploadRecord{}
	err := r.db.QueryRowContext(ctx, query, userID, questID).Scan(
		&record.ID, &record.UserID, &record.QuestID, &record.ObjectKey,
		&record.Size, &record.ContentType, &record.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest upload: %w", err)
	}
	return record, nil
}

// ListUnscoredPhotoUploads returns the (user, quest) pairs that have a photo
// uploaded against a photo-type quest but no score record yet. Used by the
// startup backfill; uploaded_at is the earliest upload of each pair.
func (r *uploadRepository) ListUnscoredPhotoUploads(ctx context.Context) ([]*models.UnscoredUpload, error) {
	query := `
		SELECT u.user_id, u.quest_id, MIN(u.uploaded_at) AS uploaded_at
		FROM uploads u
		INNER JOIN quests q ON q.id = u.quest_id
		WHERE q.option_a = ?
		AND NOT EXISTS (
			SELECT 1 FROM quest_scores s
			WHERE s.user_id = u.user_id AND s.quest_id = u.quest_id
		)
		GROUP BY u.user_id, u.quest_id
	`
	rows, err := r.db.QueryContext(ctx, query, models.PhotoOptionSentinel)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscored photo uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*models.UnscoredUpload
	for rows.Next() {
		upload := &models.UnscoredUpload{}
		if err := rows.Scan(&upload.UserID, &upload.QuestID, &upload.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unscored upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unscored uploads: %w", err)
	}
	return uploads, nil
}
