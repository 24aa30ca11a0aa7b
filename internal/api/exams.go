// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"

	"examdesk/cli/internal/backend"
)

// ListExams calls GET /exams with skip/limit pagination.
func (s *Service) ListExams(ctx context.Context, skip, limit int) (ExamList, error) {
	return backend.Do[ExamList](ctx, s.gw, backend.Get("/exams", page(skip, limit)))
}

// GetExam calls GET /exams/{id}. includeAnswers asks for the answer key.
func (s *Service) GetExam(ctx context.Context, examID int, includeAnswers bool) (Exam, error) {
	var q url.Values
	if includeAnswers {
		q = url.Values{"include_answers": {"true"}}
	}
	return backend.Do[Exam](ctx, s.gw, backend.Get("/exams/"+id(examID), q))
}

// CreateExam calls POST /exams.
func (s *Service) CreateExam(ctx context.Context, in ExamInput) (Exam, error) {
	return backend.Do[Exam](ctx, s.gw, backend.Post("/exams", in))
}

// UpdateExam calls PUT /exams/{id}.
func (s *Service) UpdateExam(ctx context.Context, examID int, in ExamInput) (Exam, error) {
	return backend.Do[Exam](ctx, s.gw, backend.Put("/exams/"+id(examID), in))
}

// DeleteExam calls DELETE /exams/{id}.
func (s *Service) DeleteExam(ctx context.Context, examID int) error {
	_, err := s.gw.Send(ctx, backend.Delete("/exams/"+id(examID)))
	return err
}

// AddQuestion calls POST /exams/{id}/questions.
func (s *Service) AddQuestion(ctx context.Context, examID int, in QuestionInput) (Question, error) {
	return backend.Do[Question](ctx, s.gw, backend.Post("/exams/"+id(examID)+"/questions", in))
}

// UpdateQuestion calls PUT /exams/{id}/questions/{qid}.
func (s *Service) UpdateQuestion(ctx context.Context, examID, questionID int, in QuestionInput) (Question, error) {
	return backend.Do[Question](ctx, s.gw, backend.Put("/exams/"+id(examID)+"/questions/"+id(questionID), in))
}

// DeleteQuestion calls DELETE /exams/{id}/questions/{qid}.
func (s *Service) DeleteQuestion(ctx context.Context, examID, questionID int) error {
	_, err := s.gw.Send(ctx, backend.Delete("/exams/"+id(examID)+"/questions/"+id(questionID)))
	return err
}
