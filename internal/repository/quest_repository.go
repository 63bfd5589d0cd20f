package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
)

type QuestRepository interface {
	GetRandomQuest(ctx context.Context, filter models.RegionFilter, photo bool) (*models.Quest, error)
	GetQuestByID(ctx context.Context, questID uint64) (*models.Quest, error)
	ListQuestRegions(ctx context.Context) ([]*models.Region, error)
}

type questRepository struct {
	db *sql.DB
}

func NewQuestRepository(db *sql.DB) QuestRepository {
	return &questRepository{db: db}
}

const questColumns = "id, city, town, village, question, option_a, option_b, option_c, option_d, correct_answer, score, created_at"

func (r *questRepository) GetRandomQuest(ctx context.Context, filter models.RegionFilter, photo bool) (*models.Quest, error) {
	// Region matching is exact per supplied level; omitted levels are
	// unconstrained. Photo quests are the rows whose option slots hold
	// the sentinel text.
	query := "SELECT " + questColumns + " FROM quests WHERE city = ?"
	args := []interface{}{filter.City}

	if filter.Town != nil {
		query += " AND town = ?"
		args = append(args, *filter.Town)
	}
	if filter.Village != nil {
		query += " AND village = ?"
		args = append(args, *filter.Village)
	}

	if photo {
		query += " AND option_a = ?"
	} else {
		query += " AND option_a <> ?"
	}
	args = append(args, models.PhotoOptionSentinel)

	query += " ORDER BY RAND() LIMIT 1"

	quest := &models.Quest{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&quest.ID, &quest.City, &quest.Town, &quest.Village,
		&quest.Question, &quest.OptionA, &quest.OptionB, &quest.OptionC,
		&quest.OptionD, &quest.CorrectAnswer, &quest.Score, &quest.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random quest: %w", err)
	}
	return quest, nil
}

func (r *questRepository) GetQuestByID(ctx context.Context, questID uint64) (*models.Quest, error) {
	query := "SELECT " + questColumns + " FROM quests WHERE id = ?"

	quest := &models.Quest{}
	err := r.db.QueryRowContext(ctx, query, questID).Scan(
		&quest.ID, &quest.City, &quest.Town, &quest.Village,
		&quest.Question, &quest.OptionA, &quest.OptionB, &quest.OptionC,
		&quest.OptionD, &quest.CorrectAnswer, &quest.Score, &quest.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return quest, nil
}

func (r *questRepository) ListQuestRegions(ctx context.Context) ([]*models.Region, error) {
	query := `
		SELECT DISTINCT city, town, village
		FROM quests
		ORDER BY city, town, village
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest regions: %w", err)
	}
	defer rows.Close()

	var regions []*models.Region
	for rows.Next() {
		region := &models.Region{}
		if err := rows.Scan(&region.City, &region.Town, &region.Village); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %w", err)
	}
	return regions, nil
}
