// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"examdesk/cli/internal/api"
)

var (
	answerPairs  []string
	answersFile  string
	historySkip  int
	historyLimit int
)

var attemptCmd = &cobra.Command{
	Use:     "attempt",
	Aliases: []string{"attempts"},
	Short:   "Take exams and review past attempts",
}

var attemptStartCmd = &cobra.Command{
	Use:   "start EXAM_ID",
	Short: "Start an attempt at an exam",
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
		a, err := call(cmd, s, "Starting attempt", func(ctx context.Context) (api.Attempt, error) {
			return s.api.StartAttempt(ctx, examID)
		})
		if err != nil {
			return err
		}
		done(cmd, "Started attempt %d; submit with: examdesk attempt submit %d --answer QUESTION_ID=ANSWER", a.ID, a.ID)
		return renderRecord(cmd, a, attemptFields(a))
	},
}

var attemptSubmitCmd = &cobra.Command{
	Use:   "submit ATTEMPT_ID",
	Short: "Submit answers for an attempt",
	Long: `Submit answers for an in-progress attempt. Answers are given as repeated
--answer QUESTION_ID=ANSWER flags or as a YAML file mapping question ids to answers:

  1: "B"
  2: "true"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attemptID, err := parseID(args[0], "attempt")
		if err != nil {
			return err
		}
		answers, err := collectAnswers(answersFile, answerPairs)
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		a, err := call(cmd, s, "Submitting answers", func(ctx context.Context) (api.Attempt, error) {
			return s.api.SubmitAttempt(ctx, attemptID, answers)
		})
		if err != nil {
			return err
		}
		done(cmd, "Submitted attempt %d", a.ID)
		return renderRecord(cmd, a, attemptFields(a))
	},
}

var attemptGetCmd = &cobra.Command{
	Use:   "get ATTEMPT_ID",
	Short: "Show an attempt and its graded answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attemptID, err := parseID(args[0], "attempt")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		a, err := call(cmd, s, "Loading attempt", func(ctx context.Context) (api.Attempt, error) {
			return s.api.GetAttempt(ctx, attemptID)
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return renderRecord(cmd, a, nil)
		}
		if err := renderRecord(cmd, a, attemptFields(a)); err != nil {
			return err
		}
		return render(cmd, a.Answers, func() pterm.TableData {
			rows := pterm.TableData{{"Question", "Answer", "Correct", "Points"}}
			for _, ans := range a.Answers {
				rows = append(rows, []string{
					strconv.Itoa(ans.QuestionID), cell(ans.Answer), optBool(ans.IsCorrect), optFloat(ans.PointsAwarded),
				})
			}
			return rows
		})
	},
}

var attemptHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your past attempts with a score summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		list, err := call(cmd, s, "Loading attempt history", func(ctx context.Context) (api.AttemptList, error) {
			return s.api.AttemptHistory(ctx, historySkip, historyLimit)
		})
		if err != nil {
			return err
		}
		if err := render(cmd, list, func() pterm.TableData { return attemptRows(list.Items) }); err != nil {
			return err
		}
		if jsonOutput || len(list.Items) == 0 {
			return nil
		}
		sum := api.SummarizeHistory(list.Items)
		pterm.Fprintln(cmd.OutOrStdout(), fmt.Sprintf(
			"%d attempts, %d graded, %d passed. Average %.1f%%, best %.1f%%.",
			sum.Attempts, sum.Graded, sum.Passed, sum.Average, sum.Best))
		return nil
	},
}

// collectAnswers merges the answers file with --answer pairs; pairs win.
func collectAnswers(file string, pairs []string) ([]api.Answer, error) {
	byQuestion := map[int]string{}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read answers file: %w", err)
		}
		if err := yaml.Unmarshal(data, &byQuestion); err != nil {
			return nil, fmt.Errorf("parse answers file: %w", err)
		}
	}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --answer %q, want QUESTION_ID=ANSWER", p)
		}
		qid, err := parseID(strings.TrimSpace(k), "question")
		if err != nil {
			return nil, err
		}
		byQuestion[qid] = v
	}

	ids := make([]int, 0, len(byQuestion))
	for id := range byQuestion {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	answers := make([]api.Answer, 0, len(ids))
	for _, id := range ids {
		answers = append(answers, api.Answer{QuestionID: id, Answer: byQuestion[id]})
	}
	return answers, nil
}

func attemptFields(a api.Attempt) [][]string {
	title := a.ExamTitle
	if title == "" {
		title = strconv.Itoa(a.ExamID)
	}
	return [][]string{
		{"Attempt", strconv.Itoa(a.ID)},
		{"Exam", title},
		{"Status", a.Status},
		{"Score", scoreText(a)},
		{"Passed", optBool(a.Passed)},
		{"Started", cell(a.StartedAt)},
		{"Submitted", cell(a.SubmittedAt)},
	}
}

func attemptRows(items []api.Attempt) pterm.TableData {
	rows := pterm.TableData{{"ID", "Exam", "Status", "Score", "Passed", "Submitted"}}
	for _, a := range items {
		exam := a.ExamTitle
		if exam == "" {
			exam = strconv.Itoa(a.ExamID)
		}
		rows = append(rows, []string{
			strconv.Itoa(a.ID), cell(exam), a.Status, scoreText(a), optBool(a.Passed), cell(a.SubmittedAt),
		})
	}
	return rows
}

func scoreText(a api.Attempt) string {
	switch {
	case a.Score != nil && a.MaxScore > 0:
		return fmt.Sprintf("%s / %s", optFloat(a.Score), strconv.FormatFloat(a.MaxScore, 'f', -1, 64))
	case a.Percentage != nil:
		return optFloat(a.Percentage) + "%"
	default:
		return "-"
	}
}

func init() {
	attemptSubmitCmd.Flags().StringArrayVar(&answerPairs, "answer", nil, "Answer as QUESTION_ID=ANSWER; repeat per question")
	attemptSubmitCmd.Flags().StringVarP(&answersFile, "answers-file", "f", "", "YAML file mapping question ids to answers")
	attemptHistoryCmd.Flags().IntVar(&historySkip, "skip", 0, "Number of attempts to skip")
	attemptHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of attempts to return")

	attemptCmd.AddCommand(attemptStartCmd, attemptSubmitCmd, attemptGetCmd, attemptHistoryCmd)
	rootCmd.AddCommand(attemptCmd)
}
