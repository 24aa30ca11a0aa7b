// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

// Timestamps are kept as the strings the backend sends; it emits ISO 8601
// without a zone, which time.Time cannot decode.

// Exam is an exam as returned by the backend.
type Exam struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	PassingScore    float64    `json:"passing_score,omitempty"`
	IsPublished     bool       `json:"is_published"`
	FolderID        *int       `json:"folder_id,omitempty"`
	Questions       []Question `json:"questions,omitempty"`
	CreatedAt       string     `json:"created_at,omitempty"`
	UpdatedAt       string     `json:"updated_at,omitempty"`
}

// ExamInput is the body for creating or updating an exam.
type ExamInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	PassingScore    float64 `json:"passing_score,omitempty"`
	IsPublished     bool    `json:"is_published"`
	FolderID        *int    `json:"folder_id,omitempty"`
}

// ExamList is one page of exams.
type ExamList struct {
	Items []Exam `json:"items"`
	Total int    `json:"total"`
}

// Question belongs to an exam. CorrectAnswer is only present when the answer
// key was requested.
type Question struct {
	ID            int      `json:"id"`
	ExamID        int      `json:"exam_id,omitempty"`
	Text          string   `json:"question_text"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Points        float64  `json:"points"`
	Order         int      `json:"order,omitempty"`
}

// QuestionInput is the body for adding or updating a question.
type QuestionInput struct {
	Text          string   `json:"question_text"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Points        float64  `json:"points"`
	Order         int      `json:"order,omitempty"`
}

// Attempt is one sitting of an exam.
type Attempt struct {
	ID          int      `json:"id"`
	ExamID      int      `json:"exam_id"`
	ExamTitle   string   `json:"exam_title,omitempty"`
	Status      string   `json:"status"`
	Score       *float64 `json:"score,omitempty"`
	MaxScore    float64  `json:"max_score,omitempty"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Passed      *bool    `json:"passed,omitempty"`
	StartedAt   string   `json:"started_at,omitempty"`
	SubmittedAt string   `json:"submitted_at,omitempty"`
	Answers     []Answer `json:"answers,omitempty"`
}

// Answer is a response to one question, graded once the attempt is submitted.
type Answer struct {
	QuestionID    int      `json:"question_id"`
	Answer        string   `json:"answer"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
	PointsAwarded *float64 `json:"points_awarded,omitempty"`
}

// Submission is the body for submitting an attempt.
type Submission struct {
	Answers []Answer `json:"answers"`
}

// AttemptList is one page of attempt history.
type AttemptList struct {
	Items []Attempt `json:"items"`
	Total int       `json:"total"`
}

// Folder groups exams and files.
type Folder struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// FolderInput is the body for creating or updating a folder.
type FolderInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
}

// File is an uploaded document.
type File struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	FolderID    *int   `json:"folder_id,omitempty"`
	URL         string `json:"url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// FileList is one page of uploaded files.
type FileList struct {
	Items []File `json:"items"`
	Total int    `json:"total"`
}

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	TotalExams     int     `json:"total_exams"`
	PublishedExams int     `json:"published_exams"`
	TotalAttempts  int     `json:"total_attempts"`
	AverageScore   float64 `json:"average_score"`
	PassRate       float64 `json:"pass_rate"`
	TotalFiles     int     `json:"total_files"`
	TotalFolders   int     `json:"total_folders"`
}

// Health is the backend liveness report.
type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}
