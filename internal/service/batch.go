package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

const (
	batchConcurrency = 10
	batchRecLimit    = 10
)

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

type BatchUserResult struct {
	UserID     int64             `json:"user_id"`
	Properties []domain.Property `json:"properties,omitempty"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	TotalUsers  int               `json:"total_users"`
	Results     []BatchUserResult `json:"results"`
	Summary     BatchSummary      `json:"summary"`
	GeneratedAt string            `json:"generated_at"`
}

// Batch computes hybrid recommendations for one page of users. The
// engine is stateless, so the per-user computations run concurrently
// under a bounded worker pool.
func (s *RecommendationService) Batch(ctx context.Context, page, limit int) (*BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.repo.UserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency)

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = s.batchOne(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	summary := BatchSummary{ProcessingTimeMs: time.Since(start).Milliseconds()}
	for _, r := range results {
		if r.Status == batchStatusSuccess {
			summary.SuccessCount++
		} else {
			summary.FailedCount++
		}
	}

	return &BatchResponse{
		Page:        page,
		Limit:       limit,
		TotalUsers:  totalUsers,
		Results:     results,
		Summary:     summary,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *RecommendationService) batchOne(ctx context.Context, userID int64) BatchUserResult {
	result, err := s.Hybrid(ctx, userID, batchRecLimit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("batch recommendation failed")
		code := "internal_error"
		if errors.Is(err, domain.ErrUserNotFound) {
			code = "user_not_found"
		}
		return BatchUserResult{UserID: userID, Status: batchStatusFailed, Error: code}
	}
	return BatchUserResult{
		UserID:     userID,
		Properties: result.Properties,
		Status:     batchStatusSuccess,
	}
}
