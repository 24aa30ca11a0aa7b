// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"

	"examdesk/cli/internal/backend"
)

// StartAttempt calls POST /exams/{id}/attempts.
func (s *Service) StartAttempt(ctx context.Context, examID int) (Attempt, error) {
	return backend.Do[Attempt](ctx, s.gw, backend.Post("/exams/"+id(examID)+"/attempts", nil))
}

// SubmitAttempt calls POST /exams/attempts/{id}/submit with the given answers.
func (s *Service) SubmitAttempt(ctx context.Context, attemptID int, answers []Answer) (Attempt, error) {
	if answers == nil {
		answers = []Answer{}
	}
	return backend.Do[Attempt](ctx, s.gw, backend.Post("/exams/attempts/"+id(attemptID)+"/submit", Submission{Answers: answers}))
}

// GetAttempt calls GET /exams/attempts/{id}.
func (s *Service) GetAttempt(ctx context.Context, attemptID int) (Attempt, error) {
	return backend.Do[Attempt](ctx, s.gw, backend.Get("/exams/attempts/"+id(attemptID), nil))
}

// AttemptHistory calls GET /exams/attempts/history.
func (s *Service) AttemptHistory(ctx context.Context, skip, limit int) (AttemptList, error) {
	return backend.Do[AttemptList](ctx, s.gw, backend.Get("/exams/attempts/history", page(skip, limit)))
}
