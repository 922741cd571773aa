package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
	"github.com/xiaot623/gogo/studybuddy/internal/protocol"
)

func newExplainCmd(opts *options) *cobra.Command {
	var complexity string

	cmd := &cobra.Command{
		Use:   "explain [topic]",
		Short: "Explain a concept",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeature(cmd, opts, protocol.FeatureRequestMessage{
				Feature:    string(domain.FeatureExplain),
				Text:       strings.Join(args, " "),
				Complexity: complexity,
			})
		},
	}
	cmd.Flags().StringVarP(&complexity, "complexity", "c", string(domain.DefaultComplexity), "simple, intermediate or advanced")
	return cmd
}

func newSummarizeCmd(opts *options) *cobra.Command {
	var notes, format string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize notes given with --notes or on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("notes") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read notes: %w", err)
				}
				notes = string(data)
			}
			return runFeature(cmd, opts, protocol.FeatureRequestMessage{
				Feature: string(domain.FeatureSummarize),
				Text:    notes,
				Format:  format,
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes to summarize (default: read stdin)")
	cmd.Flags().StringVarP(&format, "format", "f", string(domain.DefaultSummaryFormat), `"bullet points", "paragraph" or "key points only"`)
	return cmd
}

func newQuizCmd(opts *options) *cobra.Command {
	var questions int
	var difficulty string

	cmd := &cobra.Command{
		Use:   "quiz [topic]",
		Short: "Generate a multiple choice quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeature(cmd, opts, protocol.FeatureRequestMessage{
				Feature:    string(domain.FeatureQuiz),
				Text:       strings.Join(args, " "),
				Count:      &questions,
				Difficulty: difficulty,
			})
		},
	}
	cmd.Flags().IntVarP(&questions, "questions", "n", domain.DefaultQuizQuestions, "Number of questions (1-10)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(domain.DefaultDifficulty), "easy, medium or hard")
	return cmd
}

func newFlashcardsCmd(opts *options) *cobra.Command {
	var cards int

	cmd := &cobra.Command{
		Use:   "flashcards [topic]",
		Short: "Generate question and answer flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeature(cmd, opts, protocol.FeatureRequestMessage{
				Feature: string(domain.FeatureFlashcards),
				Text:    strings.Join(args, " "),
				Count:   &cards,
			})
		},
	}
	cmd.Flags().IntVarP(&cards, "cards", "n", domain.DefaultFlashcards, "Number of cards (1-20)")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the server's study sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *Client) error {
				sessions, err := c.History()
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout(), opts.raw).history(sessions)
				return nil
			})
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server's session and API key status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *Client) error {
				status := c.Status()
				keyStatus := "Not Set"
				if status.APIKeyConfigured {
					keyStatus = "Configured"
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Session:        %s\n", status.SessionID)
				fmt.Fprintf(out, "API Key Status: %s\n", keyStatus)
				fmt.Fprintf(out, "Model:          %s\n", status.Model)
				return nil
			})
		},
	}
}

func runFeature(cmd *cobra.Command, opts *options, msg protocol.FeatureRequestMessage) error {
	return withClient(cmd, opts, func(c *Client) error {
		result, err := c.Feature(msg)
		if err != nil {
			return err
		}
		newPrinter(cmd.OutOrStdout(), opts.raw).result(result)
		return nil
	})
}
