package models

import (
	"database/sql"
	"time"
)

// UploadRecord is one stored object in the uploads ledger. QuestID is null
// for free uploads that are not attached to any quest. The public URL is
// never stored; it is signed at read time.
type UploadRecord struct {
	ID          uint64        `db:"id"`
	UserID      string        `db:"user_id"`
	QuestID     sql.NullInt64 `db:"quest_id"`
	ObjectKey   string        `db:"object_key"`
	Size        int64         `db:"size"`
	ContentType string        `db:"content_type"`
	UploadedAt  time.Time     `db:"uploaded_at"`
}

// UploadResource is the body returned after a successful upload
type UploadResource struct {
	ID          uint64    `json:"id"`
	ObjectKey   string    `json:"object_key"`
	URL         *string   `json:"url"`
	QuestID     *uint64   `json:"quest_id,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// UnscoredUpload is one (user, quest) pair whose photo upload predates any
// score record. UploadedAt is the earliest upload for the pair.
type UnscoredUpload struct {
	UserID     string    `db:"user_id"`
	QuestID    uint64    `db:"quest_id"`
	UploadedAt time.Time `db:"uploaded_at"`
}
