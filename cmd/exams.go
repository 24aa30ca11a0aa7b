// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
)

var (
	examSkip     int
	examLimit    int
	withAnswers  bool
	examTitle    string
	examDesc     string
	examDuration int
	examPassing  float64
	examPublish  bool
	examFolder   int
)

var examsCmd = &cobra.Command{
	Use:     "exams",
	Aliases: []string{"exam"},
	Short:   "List, inspect and author exams",
}

var examsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		list, err := call(cmd, s, "Loading exams", func(ctx context.Context) (api.ExamList, error) {
			return s.api.ListExams(ctx, examSkip, examLimit)
		})
		if err != nil {
			return err
		}
		return render(cmd, list, func() pterm.TableData {
			rows := pterm.TableData{{"ID", "Title", "Questions", "Duration", "Published"}}
			for _, e := range list.Items {
				rows = append(rows, []string{
					strconv.Itoa(e.ID), cell(e.Title), strconv.Itoa(len(e.Questions)),
					fmt.Sprintf("%d min", e.DurationMinutes), yesNo(e.IsPublished),
				})
			}
			return rows
		})
	},
}

var examsGetCmd = &cobra.Command{
	Use:   "get EXAM_ID",
	Short: "Show an exam and its questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		exam, err := call(cmd, s, "Loading exam", func(ctx context.Context) (api.Exam, error) {
			return s.api.GetExam(ctx, examID, withAnswers)
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return renderRecord(cmd, exam, nil)
		}
		if err := renderRecord(cmd, exam, examFields(exam)); err != nil {
			return err
		}
		return render(cmd, exam.Questions, func() pterm.TableData { return questionRows(exam.Questions) })
	},
}

var examsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an exam",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if examTitle == "" {
			return fmt.Errorf("--title is required")
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		in := api.ExamInput{}
		applyExamFlags(cmd, &in)
		exam, err := call(cmd, s, "Creating exam", func(ctx context.Context) (api.Exam, error) {
			return s.api.CreateExam(ctx, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Created exam %d %q", exam.ID, exam.Title)
		return renderRecord(cmd, exam, examFields(exam))
	},
}

var examsUpdateCmd = &cobra.Command{
	Use:   "update EXAM_ID",
	Short: "Update an exam; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		current, err := call(cmd, s, "Loading exam", func(ctx context.Context) (api.Exam, error) {
			return s.api.GetExam(ctx, examID, false)
		})
		if err != nil {
			return err
		}
		in := api.ExamInput{
			Title:           current.Title,
			Description:     current.Description,
			DurationMinutes: current.DurationMinutes,
			PassingScore:    current.PassingScore,
			IsPublished:     current.IsPublished,
			FolderID:        current.FolderID,
		}
		applyExamFlags(cmd, &in)
		exam, err := call(cmd, s, "Updating exam", func(ctx context.Context) (api.Exam, error) {
			return s.api.UpdateExam(ctx, examID, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Updated exam %d", exam.ID)
		return renderRecord(cmd, exam, examFields(exam))
	},
}

var examsDeleteCmd = &cobra.Command{
	Use:   "delete EXAM_ID",
	Short: "Delete an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if _, err := call(cmd, s, "Deleting exam", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteExam(ctx, examID)
		}); err != nil {
			return err
		}
		done(cmd, "Deleted exam %d", examID)
		return nil
	},
}

// applyExamFlags copies the flags the user actually set onto in.
func applyExamFlags(cmd *cobra.Command, in *api.ExamInput) {
	f := cmd.Flags()
	if f.Changed("title") {
		in.Title = examTitle
	}
	if f.Changed("description") {
		in.Description = examDesc
	}
	if f.Changed("duration") {
		in.DurationMinutes = examDuration
	}
	if f.Changed("passing-score") {
		in.PassingScore = examPassing
	}
	if f.Changed("published") {
		in.IsPublished = examPublish
	}
	if f.Changed("folder") {
		folder := examFolder
		in.FolderID = &folder
	}
}

func examFields(e api.Exam) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Title", e.Title},
		{"Description", cell(e.Description)},
		{"Duration", fmt.Sprintf("%d min", e.DurationMinutes)},
		{"Passing score", strconv.FormatFloat(e.PassingScore, 'f', -1, 64)},
		{"Published", yesNo(e.IsPublished)},
		{"Folder", optInt(e.FolderID)},
	}
}

func questionRows(qs []api.Question) pterm.TableData {
	rows := pterm.TableData{{"ID", "Question", "Type", "Points", "Answer"}}
	for _, q := range qs {
		answer := "-"
		if q.CorrectAnswer != nil {
			answer = *q.CorrectAnswer
		}
		rows = append(rows, []string{
			strconv.Itoa(q.ID), cell(q.Text), q.Type,
			strconv.FormatFloat(q.Points, 'f', -1, 64), cell(answer),
		})
	}
	return rows
}

func addExamInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&examTitle, "title", "", "Exam title")
	c.Flags().StringVar(&examDesc, "description", "", "Exam description")
	c.Flags().IntVar(&examDuration, "duration", 0, "Duration in minutes")
	c.Flags().Float64Var(&examPassing, "passing-score", 0, "Passing score in percent")
	c.Flags().BoolVar(&examPublish, "published", false, "Publish the exam")
	c.Flags().IntVar(&examFolder, "folder", 0, "Folder to file the exam under")
}

func init() {
	examsListCmd.Flags().IntVar(&examSkip, "skip", 0, "Number of exams to skip")
	examsListCmd.Flags().IntVar(&examLimit, "limit", 20, "Maximum number of exams to return")
	examsGetCmd.Flags().BoolVar(&withAnswers, "answers", false, "Include the answer key")
	addExamInputFlags(examsCreateCmd)
	addExamInputFlags(examsUpdateCmd)

	examsCmd.AddCommand(examsListCmd, examsGetCmd, examsCreateCmd, examsUpdateCmd, examsDeleteCmd)
	rootCmd.AddCommand(examsCmd)
}
