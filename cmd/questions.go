// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
)

var (
	questionText    string
	questionType    string
	questionOptions []string
	questionAnswer  string
	questionPoints  float64
	questionOrder   int
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"question", "q"},
	Short:   "Add, edit and remove exam questions",
}

var questionsAddCmd = &cobra.Command{
	Use:   "add EXAM_ID",
	Short: "Add a question to an exam",
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
		in := questionInput()
		q, err := call(cmd, s, "Adding question", func(ctx context.Context) (api.Question, error) {
			return s.api.AddQuestion(ctx, examID, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Added question %d to exam %d", q.ID, examID)
		return renderRecord(cmd, q, questionFields(q))
	},
}

var questionsUpdateCmd = &cobra.Command{
	Use:   "update EXAM_ID QUESTION_ID",
	Short: "Replace a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		questionID, err := parseID(args[1], "question")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		in := questionInput()
		q, err := call(cmd, s, "Updating question", func(ctx context.Context) (api.Question, error) {
			return s.api.UpdateQuestion(ctx, examID, questionID, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Updated question %d", q.ID)
		return renderRecord(cmd, q, questionFields(q))
	},
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete EXAM_ID QUESTION_ID",
	Short: "Remove a question from an exam",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		questionID, err := parseID(args[1], "question")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if _, err := call(cmd, s, "Deleting question", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteQuestion(ctx, examID, questionID)
		}); err != nil {
			return err
		}
		done(cmd, "Deleted question %d from exam %d", questionID, examID)
		return nil
	},
}

func questionInput() api.QuestionInput {
	return api.QuestionInput{
		Text:          questionText,
		Type:          questionType,
		Options:       questionOptions,
		CorrectAnswer: questionAnswer,
		Points:        questionPoints,
		Order:         questionOrder,
	}
}

func questionFields(q api.Question) [][]string {
	answer := "-"
	if q.CorrectAnswer != nil {
		answer = *q.CorrectAnswer
	}
	rows := [][]string{
		{"ID", strconv.Itoa(q.ID)},
		{"Question", q.Text},
		{"Type", q.Type},
		{"Points", strconv.FormatFloat(q.Points, 'f', -1, 64)},
		{"Answer", answer},
	}
	for i, opt := range q.Options {
		rows = append(rows, []string{"Option " + strconv.Itoa(i+1), opt})
	}
	return rows
}

func addQuestionFlags(c *cobra.Command) {
	c.Flags().StringVar(&questionText, "text", "", "Question text")
	c.Flags().StringVar(&questionType, "type", "multiple_choice", "Question type (multiple_choice, true_false, short_answer)")
	c.Flags().StringArrayVar(&questionOptions, "option", nil, "Answer option; repeat for each choice")
	c.Flags().StringVar(&questionAnswer, "answer", "", "Correct answer")
	c.Flags().Float64Var(&questionPoints, "points", 1, "Points awarded for a correct answer")
	c.Flags().IntVar(&questionOrder, "order", 0, "Position within the exam")
	_ = c.MarkFlagRequired("text")
}

func init() {
	addQuestionFlags(questionsAddCmd)
	addQuestionFlags(questionsUpdateCmd)
	questionsCmd.AddCommand(questionsAddCmd, questionsUpdateCmd, questionsDeleteCmd)
	rootCmd.AddCommand(questionsCmd)
}
