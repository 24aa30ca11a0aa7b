// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"examdesk/cli/internal/backend"
	apperrors "examdesk/cli/internal/errors"
)

type recorded struct {
	Method      string
	Path        string
	RawQuery    string
	Body        string
	ContentType string
}

// recorder is a fake backend that logs every request and answers with a fixed body.
type recorder struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, recorded{
		Method:      req.Method,
		Path:        req.URL.Path,
		RawQuery:    req.URL.RawQuery,
		Body:        string(b),
		ContentType: req.Header.Get("Content-Type"),
	})
	status, body := r.status, r.body
	r.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) last() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func newService(t *testing.T, rec *recorder) *Service {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	cfg := backend.DefaultConfig(srv.URL + "/api/v1")
	cfg.Retry = backend.RetryPolicy{MaxAttempts: 1, Delay: time.Millisecond}
	return New(backend.NewClient(cfg, nil, nil))
}

func intp(n int) *int { return &n }

func TestEndpointRouting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(*Service) error
		method string
		path   string
		query  string
	}{
		{"list exams", func(s *Service) error { _, err := s.ListExams(ctx, 20, 10); return err }, "GET", "/api/v1/exams", "limit=10&skip=20"},
		{"get exam", func(s *Service) error { _, err := s.GetExam(ctx, 3, false); return err }, "GET", "/api/v1/exams/3", ""},
		{"get exam with answers", func(s *Service) error { _, err := s.GetExam(ctx, 3, true); return err }, "GET", "/api/v1/exams/3", "include_answers=true"},
		{"create exam", func(s *Service) error { _, err := s.CreateExam(ctx, ExamInput{Title: "t"}); return err }, "POST", "/api/v1/exams", ""},
		{"update exam", func(s *Service) error { _, err := s.UpdateExam(ctx, 4, ExamInput{Title: "t"}); return err }, "PUT", "/api/v1/exams/4", ""},
		{"delete exam", func(s *Service) error { return s.DeleteExam(ctx, 4) }, "DELETE", "/api/v1/exams/4", ""},
		{"add question", func(s *Service) error { _, err := s.AddQuestion(ctx, 4, QuestionInput{Text: "q"}); return err }, "POST", "/api/v1/exams/4/questions", ""},
		{"update question", func(s *Service) error { _, err := s.UpdateQuestion(ctx, 4, 9, QuestionInput{}); return err }, "PUT", "/api/v1/exams/4/questions/9", ""},
		{"delete question", func(s *Service) error { return s.DeleteQuestion(ctx, 4, 9) }, "DELETE", "/api/v1/exams/4/questions/9", ""},
		{"start attempt", func(s *Service) error { _, err := s.StartAttempt(ctx, 4); return err }, "POST", "/api/v1/exams/4/attempts", ""},
		{"submit attempt", func(s *Service) error { _, err := s.SubmitAttempt(ctx, 11, nil); return err }, "POST", "/api/v1/exams/attempts/11/submit", ""},
		{"get attempt", func(s *Service) error { _, err := s.GetAttempt(ctx, 11); return err }, "GET", "/api/v1/exams/attempts/11", ""},
		{"attempt history", func(s *Service) error { _, err := s.AttemptHistory(ctx, 0, 5); return err }, "GET", "/api/v1/exams/attempts/history", "limit=5&skip=0"},
		{"list folders", func(s *Service) error { _, err := s.ListFolders(ctx, 0, 0); return err }, "GET", "/api/v1/folders", "skip=0"},
		{"get folder", func(s *Service) error { _, err := s.GetFolder(ctx, 2); return err }, "GET", "/api/v1/folders/2", ""},
		{"create folder", func(s *Service) error { _, err := s.CreateFolder(ctx, FolderInput{Name: "f"}); return err }, "POST", "/api/v1/folders", ""},
		{"update folder", func(s *Service) error { _, err := s.UpdateFolder(ctx, 2, FolderInput{Name: "f"}); return err }, "PUT", "/api/v1/folders/2", ""},
		{"delete folder", func(s *Service) error { return s.DeleteFolder(ctx, 2) }, "DELETE", "/api/v1/folders/2", ""},
		{"list files", func(s *Service) error { _, err := s.ListFiles(ctx, 0, 10, intp(2)); return err }, "GET", "/api/v1/upload", "folder_id=2&limit=10&skip=0"},
		{"get file", func(s *Service) error { _, err := s.GetFile(ctx, 8); return err }, "GET", "/api/v1/upload/8", ""},
		{"delete file", func(s *Service) error { return s.DeleteFile(ctx, 8) }, "DELETE", "/api/v1/upload/8", ""},
		{"dashboard stats", func(s *Service) error { _, err := s.DashboardStats(ctx); return err }, "GET", "/api/v1/dashboard/stats", ""},
		{"recent attempts", func(s *Service) error { _, err := s.RecentAttempts(ctx, 3); return err }, "GET", "/api/v1/dashboard/recent-attempts", "limit=3"},
		{"health", func(s *Service) error { _, err := s.Health(ctx); return err }, "GET", "/api/v1/health", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			svc := newService(t, rec)
			if err := tt.call(svc); err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			got := rec.last()
			if got.Method != tt.method || got.Path != tt.path || got.RawQuery != tt.query {
				t.Fatalf("got %s %s?%s, want %s %s?%s", got.Method, got.Path, got.RawQuery, tt.method, tt.path, tt.query)
			}
		})
	}
}

func TestListExams_PassesPageThrough(t *testing.T) {
	t.Parallel()

	items := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		items = append(items, fmt.Sprintf(`{"id":%d,"title":"Exam %d","is_published":true}`, i, i))
	}
	rec := &recorder{body: `{"items":[` + strings.Join(items, ",") + `],"total":12}`}

	list, err := newService(t, rec).ListExams(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(list.Items) != 10 || list.Total != 12 {
		t.Fatalf("got %d items, total %d", len(list.Items), list.Total)
	}
	for i, e := range list.Items {
		if e.ID != i+1 || e.Title != fmt.Sprintf("Exam %d", i+1) {
			t.Fatalf("item %d altered: %+v", i, e)
		}
	}
}

func TestUploadFile_FolderQuery(t *testing.T) {
	t.Parallel()

	rec := &recorder{body: `{"id":1,"filename":"a.pdf"}`}
	svc := newService(t, rec)

	if _, err := svc.UploadFile(context.Background(), "a.pdf", bytes.NewReader([]byte("%PDF")), nil); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	got := rec.last()
	if got.RawQuery != "" {
		t.Fatalf("expected no folder_id, got query %q", got.RawQuery)
	}
	if !strings.HasPrefix(got.ContentType, "multipart/form-data") {
		t.Fatalf("content type = %q", got.ContentType)
	}
	if !strings.Contains(got.Body, `filename="a.pdf"`) || !strings.Contains(got.Body, "%PDF") {
		t.Fatalf("multipart body missing file part: %q", got.Body)
	}

	if _, err := svc.UploadFile(context.Background(), "a.pdf", bytes.NewReader([]byte("%PDF")), intp(5)); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if q := rec.last().RawQuery; q != "folder_id=5" {
		t.Fatalf("query = %q, want folder_id=5", q)
	}
}

func TestSubmitAttempt_SendsAnswers(t *testing.T) {
	t.Parallel()

	rec := &recorder{body: `{"id":11,"exam_id":4,"status":"graded","score":8,"max_score":10}`}
	attempt, err := newService(t, rec).SubmitAttempt(context.Background(), 11, []Answer{{QuestionID: 1, Answer: "B"}})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Status != "graded" || attempt.Score == nil || *attempt.Score != 8 {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}

	var sent Submission
	if err := json.Unmarshal([]byte(rec.last().Body), &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(sent.Answers) != 1 || sent.Answers[0].Answer != "B" {
		t.Fatalf("sent %+v", sent)
	}
}

func TestEndpoints_NoMemoization(t *testing.T) {
	t.Parallel()

	rec := &recorder{body: `{"status":"ok"}`}
	svc := newService(t, rec)
	for i := 0; i < 2; i++ {
		if _, err := svc.Health(context.Background()); err != nil {
			t.Fatalf("Health: %v", err)
		}
	}
	if rec.count() != 2 {
		t.Fatalf("requests = %d, want 2", rec.count())
	}
}

func TestEndpoints_ReturnGatewayErrors(t *testing.T) {
	t.Parallel()

	rec := &recorder{status: http.StatusNotFound, body: `{"detail":"Exam not found"}`}
	_, err := newService(t, rec).GetExam(context.Background(), 99, false)
	if !apperrors.Is(err, apperrors.NotFound) {
		t.Fatalf("kind = %s, want not_found", apperrors.KindOf(err))
	}
	if apperrors.Message(err) != "Exam not found" {
		t.Fatalf("message = %q", apperrors.Message(err))
	}
}
