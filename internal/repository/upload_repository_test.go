package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
)

func TestCreateUpload(t *testing.T) {
	record := &models.UploadRecord{
		UserID:      "kakao-1001",
		QuestID:     sql.NullInt64{Int64: 42, Valid: true},
		ObjectKey:   "uploads/kakao-1001/0d5ff7c2.jpg",
		Size:        34567,
		ContentType: "image/jpeg",
		UploadedAt:  time.Now(),
	}

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectError bool
		expectedID  uint64
	}{
		{
			name: "successful creation",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO uploads`).
					WithArgs(
						"kakao-1001",
						int64(42),
						"uploads/kakao-1001/0d5ff7c2.jpg",
						int64(34567),
						"image/jpeg",
						sqlmock.AnyArg(), // uploaded_at
					).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO uploads`).
					WillReturnError(sql.ErrConnDone)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a new mock for each test
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			repo := NewUploadRepository(db)

			tt.setupMock(mock)

			id, err := repo.CreateUpload(context.Background(), record)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, uint64(0), id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetLatestUploadForQuest(t *testing.T) {
	latestQuery := "SELECT id, user_id, quest_id, object_key, size, content_type, uploaded_at FROM uploads WHERE user_id = ? AND quest_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1"

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectError bool
		expectNil   bool
	}{
		{
			name: "latest upload found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "quest_id", "object_key", "size", "content_type", "uploaded_at"}).
					AddRow(12, "kakao-1001", 42, "uploads/kakao-1001/newest.jpg", 1024, "image/jpeg", time.Now())
				mock.ExpectQuery(latestQuery).
					WithArgs("kakao-1001", uint64(42)).
					WillReturnRows(rows)
			},
		},
		{
			name: "no upload returns nil",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(latestQuery).
					WithArgs("kakao-1001", uint64(42)).
					WillReturnError(sql.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(latestQuery).
					WithArgs("kakao-1001", uint64(42)).
					WillReturnError(sql.ErrConnDone)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer db.Close()
			repo := NewUploadRepository(db)

			tt.setupMock(mock)

			record, err := repo.GetLatestUploadForQuest(context.Background(), "kakao-1001", 42)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectNil {
					assert.Nil(t, record)
				} else {
					require.NotNil(t, record)
					assert.Equal(t, "uploads/kakao-1001/newest.jpg", record.ObjectKey)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListUnscoredPhotoUploads(t *testing.T) {
	backfillQuery := "SELECT u.user_id, u.quest_id, MIN(u.uploaded_at) AS uploaded_at FROM uploads u INNER JOIN quests q ON q.id = u.quest_id WHERE q.option_a = ? AND NOT EXISTS ( SELECT 1 FROM quest_scores s WHERE s.user_id = u.user_id AND s.quest_id = u.quest_id ) GROUP BY u.user_id, u.quest_id"

	t.Run("returns unscored pairs", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()
		repo := NewUploadRepository(db)

		rows := sqlmock.NewRows([]string{"user_id", "quest_id", "uploaded_at"}).
			AddRow("kakao-1001", 42, time.Now().Add(-48*time.Hour)).
			AddRow("kakao-2002", 42, time.Now().Add(-24*time.Hour))
		mock.ExpectQuery(backfillQuery).
			WithArgs(models.PhotoOptionSentinel).
			WillReturnRows(rows)

		uploads, err := repo.ListUnscoredPhotoUploads(context.Background())

		require.NoError(t, err)
		require.Len(t, uploads, 2)
		assert.Equal(t, "kakao-1001", uploads[0].UserID)
		assert.Equal(t, uint64(42), uploads[0].QuestID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()
		repo := NewUploadRepository(db)

		mock.ExpectQuery(backfillQuery).
			WithArgs(models.PhotoOptionSentinel).
			WillReturnError(sql.ErrConnDone)

		uploads, err := repo.ListUnscoredPhotoUploads(context.Background())

		assert.Error(t, err)
		assert.Nil(t, uploads)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
