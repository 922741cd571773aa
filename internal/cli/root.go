// Package cli implements the studybuddy-cli command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// DefaultAddr is the server's WebSocket endpoint on a local run.
const DefaultAddr = "ws://localhost:8080/v1/ws"

// errRejected is returned after the server's warnings have been printed.
var errRejected = errors.New("request rejected")

type options struct {
	addr    string
	raw     bool
	timeout time.Duration
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "studybuddy-cli",
		Short: "StudyBuddy - AI study companion in the terminal",
		Long: `studybuddy-cli talks to a running studybuddy server.

It explains concepts, summarizes notes, and generates quizzes and flashcards.
Every result is recorded in the server's session history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addr := os.Getenv("STUDYBUDDY_ADDR")
	if addr == "" {
		addr = DefaultAddr
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.addr, "addr", addr, "WebSocket server address")
	rootCmd.PersistentFlags().BoolVar(&opts.raw, "raw", false, "Print model output without markdown rendering")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 90*time.Second, "How long to wait for a reply")

	rootCmd.AddCommand(newExplainCmd(opts))
	rootCmd.AddCommand(newSummarizeCmd(opts))
	rootCmd.AddCommand(newQuizCmd(opts))
	rootCmd.AddCommand(newFlashcardsCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd := NewRootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// withClient dials the server, runs fn and closes the connection.
func withClient(cmd *cobra.Command, opts *options, fn func(*Client) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client, err := Dial(ctx, opts.addr, opts.timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	err = fn(client)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, w := range verr.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", w)
		}
		return errRejected
	}
	return err
}
