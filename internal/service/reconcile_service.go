package service

import (
	"context"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

// ReconcileService backfills score records for photo uploads that never got
// one, e.g. because the process died between storing the photo and scoring
// it. It runs once at startup; the write-once ledger makes re-runs no-ops.
type ReconcileService struct {
	uploadRepo repository.UploadRepository
	scores     *ScoreService
	log        *logger.Logger
}

func NewReconcileService(uploadRepo repository.UploadRepository, scores *ScoreService, log *logger.Logger) *ReconcileService {
	return &ReconcileService{
		uploadRepo: uploadRepo,
		scores:     scores,
		log:        log,
	}
}

// Run scans for photo-quest uploads without a score record and inserts the
// missing records, dated at the earliest upload. A failing row is logged and
// skipped; the job never takes the process down.
func (s *ReconcileService) Run(ctx context.Context) {
	uploads, err := s.uploadRepo.ListUnscoredPhotoUploads(ctx)
	if err != nil {
		s.log.Error("Failed to scan for unscored photo uploads", "error", err)
		return
	}

	backfilled := 0
	failed := 0
	for _, upload := range uploads {
		if err := s.scores.AutoScoreUpload(ctx, upload.UserID, upload.QuestID, upload.UploadedAt); err != nil {
			failed++
			s.log.Error("Failed to backfill photo score",
				"user_id", upload.UserID, "quest_id", upload.QuestID, "error", err)
			continue
		}
		backfilled++
	}

	s.log.Info("Photo score reconciliation finished",
		"scanned", len(uploads), "backfilled", backfilled, "failed", failed)
}
