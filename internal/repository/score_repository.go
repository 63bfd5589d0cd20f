package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
)

type ScoreRepository interface {
	CreateScoreRecord(ctx context.Context, record *models.ScoreRecord) (bool, error)
	ListScoresByUser(ctx context.Context, userID string) ([]*models.ScoreRecord, error)
}

type scoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

// CreateScoreRecord inserts a score record unless one already exists for the
// (user_id, quest_id) pair. The ledger is write-once: the insert is a single
// INSERT IGNORE against the unique key, and zero affected rows means an
// earlier record won the race. Returns whether this call inserted the row.
func (r *scoreRepository) CreateScoreRecord(ctx context.Context, record *models.ScoreRecord) (bool, error) {
	query := `
		INSERT IGNORE INTO quest_scores (user_id, quest_id, city, town, village, question, user_answer, correct_answer, awarded_score, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		record.UserID, record.QuestID, record.City, record.Town, record.Village,
		record.Question, record.UserAnswer, record.CorrectAnswer,
		record.AwardedScore, record.AnsweredAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create score record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *scoreRepository) ListScoresByUser(ctx context.Context, userID string) ([]*models.ScoreRecord, error) {
	query := `
		SELECT id, user_id, quest_id, city, town, village, question, user_answer, correct_answer, awarded_score, answered_at
		FROM quest_scores
		WHERE user_id = ?
		ORDER BY answered_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	defer rows.Close()

	var records []*models.ScoreRecord
	for rows.Next() {
		record := &models.ScoreRecord{}
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.QuestID, &record.City,
			&record.Town, &record.Village, &record.Question, &record.UserAnswer,
			&record.CorrectAnswer, &record.AwardedScore, &record.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score records: %w", err)
	}
	return records, nil
}
