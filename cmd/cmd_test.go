// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"examdesk/cli/internal/api"
	"examdesk/cli/internal/config"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type hit struct {
	method, path, query, auth, body string
}

// fakeBackend routes "METHOD /path" keys under /api/v1 and records every request.
type fakeBackend struct {
	mu     sync.Mutex
	hits   []hit
	routes map[string]func() (int, string)
	router *mux.Router
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	if f.router == nil {
		f.router = f.buildRouter()
	}
	router := f.router
	f.mu.Unlock()
	router.ServeHTTP(w, r)
}

func (f *fakeBackend) buildRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b, _ := io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(b))
			f.mu.Lock()
			f.hits = append(f.hits, hit{req.Method, req.URL.Path, req.URL.RawQuery, req.Header.Get("Authorization"), string(b)})
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	v1 := r.PathPrefix("/api/v1").Subrouter()
	for key, route := range f.routes {
		method, path, _ := strings.Cut(key, " ")
		v1.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			status, body := route()
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		}).Methods(method)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		f.hits = append(f.hits, hit{req.Method, req.URL.Path, req.URL.RawQuery, req.Header.Get("Authorization"), ""})
		f.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
	})
	return r
}

func (f *fakeBackend) recorded() []hit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]hit(nil), f.hits...)
}

func ok(body string) func() (int, string) {
	return func() (int, string) { return http.StatusOK, body }
}

// resetFlags returns every flag to its default and drops the context cobra
// copied into the command, so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	c.SetContext(nil) // cobra only hands the root context to commands without one

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against backend with a test config and token.
func run(t *testing.T, backend *fakeBackend, args ...string) (string, string, error) {
	t.Helper()
	return runContext(t, context.Background(), backend, args...)
}

// runContext is run with the command context set to ctx.
func runContext(t *testing.T, ctx context.Context, backend *fakeBackend, args ...string) (string, string, error) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvTimeoutMS, "")
	t.Setenv(config.EnvToken, "")
	cfg := "retry:\n  max_attempts: 1\n  delay_ms: 1\nlog_level: error\n"
	if err := os.MkdirAll(filepath.Join(cfgHome, "examdesk"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgHome, "examdesk", "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--api-url", srv.URL + "/api/v1", "--token", "test-token"}, args...))
	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestExamsList_JSON(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams": ok(`{"items":[{"id":1,"title":"Algebra","is_published":true},{"id":2,"title":"Geometry"}],"total":2}`),
	}}

	stdout, _, err := run(t, backend, "--json", "exams", "list", "--limit", "10")
	if err != nil {
		t.Fatalf("exams list: %v", err)
	}
	var got api.ExamList
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got.Total != 2 || got.Items[0].Title != "Algebra" {
		t.Fatalf("unexpected list: %+v", got)
	}

	h := backend.recorded()[0]
	if h.query != "limit=10&skip=0" {
		t.Fatalf("query = %q", h.query)
	}
	if h.auth != "Bearer test-token" {
		t.Fatalf("authorization = %q", h.auth)
	}
}

func TestCancelledContextStopsHangingRequest(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams": func() (int, string) {
			<-release
			return http.StatusOK, `{"items":[],"total":0}`
		},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, _, err := runContext(t, ctx, backend, "exams", "list")
	if err == nil {
		t.Fatal("expected error from cancelled request")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancellation took %s", elapsed)
	}
	if n := len(backend.recorded()); n != 1 {
		t.Fatalf("requests = %d, want 1 (no retry after cancel)", n)
	}
}

func TestExamsList_Table(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams": ok(`{"items":[{"id":1,"title":"Algebra","duration_minutes":45,"is_published":true}],"total":1}`),
	}}

	stdout, _, err := run(t, backend, "exams", "list")
	if err != nil {
		t.Fatalf("exams list: %v", err)
	}
	for _, want := range []string{"Title", "Algebra", "45 min", "yes"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("table missing %q:\n%s", want, stdout)
		}
	}
}

func TestBackendErrorIsToastedOnce(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams/99": func() (int, string) { return http.StatusNotFound, `{"detail":"Exam not found"}` },
	}}

	_, stderr, err := run(t, backend, "exams", "get", "99")
	var shown reportedError
	if !errors.As(err, &shown) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if strings.Count(stderr, "Exam not found") != 1 {
		t.Fatalf("toast count wrong:\n%s", stderr)
	}
	if len(backend.recorded()) != 1 {
		t.Fatalf("client error was retried: %d requests", len(backend.recorded()))
	}
}

func TestUnauthorizedShowsLoginHint(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /dashboard/stats": func() (int, string) { return http.StatusUnauthorized, `{"detail":"Invalid token"}` },
	}}

	_, stderr, err := run(t, backend, "dashboard")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(stderr, "Invalid token") || !strings.Contains(stderr, "examdesk login") {
		t.Fatalf("stderr:\n%s", stderr)
	}
}

func TestExamsUpdate_KeepsUnchangedFields(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams/4": ok(`{"id":4,"title":"Old","description":"Chapter 1-3","duration_minutes":30,"is_published":true}`),
		"PUT /exams/4": ok(`{"id":4,"title":"New","description":"Chapter 1-3","duration_minutes":30,"is_published":true}`),
	}}

	if _, _, err := run(t, backend, "exams", "update", "4", "--title", "New"); err != nil {
		t.Fatalf("exams update: %v", err)
	}
	hits := backend.recorded()
	if len(hits) != 2 || hits[1].method != http.MethodPut {
		t.Fatalf("requests = %+v", hits)
	}
	var sent api.ExamInput
	if err := json.Unmarshal([]byte(hits[1].body), &sent); err != nil {
		t.Fatal(err)
	}
	if sent.Title != "New" || sent.Description != "Chapter 1-3" || sent.DurationMinutes != 30 || !sent.IsPublished {
		t.Fatalf("sent %+v", sent)
	}
}

func TestAttemptSubmit_SortsAnswers(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"POST /exams/attempts/11/submit": ok(`{"id":11,"exam_id":4,"status":"graded","score":2,"max_score":2,"passed":true}`),
	}}

	stdout, _, err := run(t, backend, "attempt", "submit", "11", "--answer", "2=B", "--answer", "1=A")
	if err != nil {
		t.Fatalf("attempt submit: %v", err)
	}
	if !strings.Contains(stdout, "2.0 / 2") {
		t.Fatalf("score missing:\n%s", stdout)
	}
	var sent api.Submission
	if err := json.Unmarshal([]byte(backend.recorded()[0].body), &sent); err != nil {
		t.Fatal(err)
	}
	if len(sent.Answers) != 2 || sent.Answers[0].QuestionID != 1 || sent.Answers[1].Answer != "B" {
		t.Fatalf("sent %+v", sent.Answers)
	}
}

func TestAttemptHistory_PrintsSummary(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /exams/attempts/history": ok(`{"items":[
			{"id":1,"exam_id":4,"status":"graded","percentage":90,"passed":true},
			{"id":2,"exam_id":4,"status":"graded","percentage":50,"passed":false}],"total":2}`),
	}}

	stdout, _, err := run(t, backend, "attempt", "history")
	if err != nil {
		t.Fatalf("attempt history: %v", err)
	}
	if !strings.Contains(stdout, "2 attempts, 2 graded, 1 passed. Average 70.0%, best 90.0%.") {
		t.Fatalf("summary missing:\n%s", stdout)
	}
}

func TestFilesUpload_FolderFlag(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"POST /upload": ok(`{"id":5,"filename":"notes.txt","size":5}`),
	}}
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, backend, "files", "upload", path); err != nil {
		t.Fatalf("files upload: %v", err)
	}
	if _, _, err := run(t, backend, "files", "upload", path, "--folder", "3"); err != nil {
		t.Fatalf("files upload --folder: %v", err)
	}

	hits := backend.recorded()
	if hits[0].query != "" || hits[1].query != "folder_id=3" {
		t.Fatalf("queries = %q, %q", hits[0].query, hits[1].query)
	}
	if !strings.Contains(hits[0].body, `filename="notes.txt"`) || !strings.Contains(hits[0].body, "hello") {
		t.Fatalf("multipart body = %q", hits[0].body)
	}
}

func TestHealth(t *testing.T) {
	backend := &fakeBackend{routes: map[string]func() (int, string){
		"GET /health": ok(`{"status":"ok","version":"1.4.0"}`),
	}}

	stdout, _, err := run(t, backend, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(stdout, "is ok") {
		t.Fatalf("stdout:\n%s", stdout)
	}

	stdout, _, err = run(t, backend, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "backend 1.4.0") {
		t.Fatalf("stdout:\n%s", stdout)
	}
}

func TestInvalidIDFailsBeforeRequest(t *testing.T) {
	backend := &fakeBackend{}
	_, _, err := run(t, backend, "folders", "get", "abc")
	if err == nil || !strings.Contains(err.Error(), `invalid folder id "abc"`) {
		t.Fatalf("err = %v", err)
	}
	if len(backend.recorded()) != 0 {
		t.Fatal("request sent for invalid id")
	}
}

func TestCollectAnswers(t *testing.T) {
	file := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(file, []byte("1: \"A\"\n3: \"true\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := collectAnswers(file, []string{"2=C", "3=false"})
	if err != nil {
		t.Fatalf("collectAnswers: %v", err)
	}
	want := []api.Answer{{QuestionID: 1, Answer: "A"}, {QuestionID: 2, Answer: "C"}, {QuestionID: 3, Answer: "false"}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i].QuestionID != want[i].QuestionID || got[i].Answer != want[i].Answer {
			t.Fatalf("answer %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := collectAnswers("", []string{"missing-separator"}); err == nil {
		t.Fatal("expected error for malformed pair")
	}
}

func TestHumanSize(t *testing.T) {
	tests := map[int64]string{
		0:           "0 B",
		1023:        "1023 B",
		1536:        "1.5 KiB",
		5 * 1 << 20: "5.0 MiB",
	}
	for in, want := range tests {
		if got := humanSize(in); got != want {
			t.Errorf("humanSize(%d) = %q, want %q", in, got, want)
		}
	}
}
