package models

import (
	"database/sql"
	"time"
)

// ScoreRecord is one row of the write-once answer ledger. Region and
// question text are snapshots taken at answer time; the quest row may
// change or disappear afterwards without rewriting history.
type ScoreRecord struct {
	ID            uint64         `db:"id"`
	UserID        string         `db:"user_id"`
	QuestID       uint64         `db:"quest_id"`
	City          string         `db:"city"`
	Town          sql.NullString `db:"town"`
	Village       sql.NullString `db:"village"`
	Question      string         `db:"question"`
	UserAnswer    string         `db:"user_answer"`
	CorrectAnswer string         `db:"correct_answer"`
	AwardedScore  int32          `db:"awarded_score"`
	AnsweredAt    time.Time      `db:"answered_at"`
}

// HistoryEntryResource is one completed quest in a user's history.
// ImageURL is a freshly minted signed URL or null when no image could be
// resolved for the entry.
type HistoryEntryResource struct {
	QuestID       uint64    `json:"quest_id"`
	City          string    `json:"city"`
	Town          *string   `json:"town,omitempty"`
	Village       *string   `json:"village,omitempty"`
	Question      string    `json:"question"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	AwardedScore  int32     `json:"awarded_score"`
	AnsweredAt    time.Time `json:"answered_at"`
	ImageURL      *string   `json:"image_url"`
}
