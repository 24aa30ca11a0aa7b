// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Examdesk CLI application.
// It implements subcommands for managing exams, questions, attempts, folders and
// uploaded files on the exam platform using the Cobra CLI framework. Every backend
// call goes through the request gateway and a fetch bridge that drives the inline
// spinner and the error toasts.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
	"examdesk/cli/internal/backend"
	"examdesk/cli/internal/config"
	"examdesk/cli/internal/keychain"
	"examdesk/cli/internal/logging"
	"examdesk/cli/internal/terminal"
)

var (
	showVersion bool
	apiURLFlag  string
	tokenFlag   string
	verbose     bool
	jsonOutput  bool
)

// The keychain manager is one of the credential sources the gateway accepts.
var _ backend.Credentials = (*keychain.Manager)(nil)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "examdesk",
	Short:         "Examdesk CLI for the exam platform",
	Long:          `Examdesk is a command-line client for the exam platform: author exams and questions, take attempts, and manage folders and uploaded files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd)
		}
		return cmd.Help()
	},
}

// session carries what a command needs to talk to the backend.
type session struct {
	cfg     config.Config
	log     *slog.Logger
	creds   backend.Credentials
	gw      *backend.Client
	api     *api.Service
	toaster *logging.Toaster
}

// newSession loads configuration, applies the global flags and wires the
// gateway. Credentials come from --token, then EXAMDESK_TOKEN, then the keychain.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	errOut := cmd.ErrOrStderr()
	log := logging.NewLogger(errOut, level, !terminal.IsInteractive(errOut))

	s := &session{cfg: cfg, log: log, toaster: logging.NewToaster(errOut)}
	s.creds = resolveCredentials(log)

	gwCfg := cfg.Gateway()
	gwCfg.UserAgent = "examdesk-cli/" + Version
	s.gw = backend.NewClient(gwCfg, s.creds, log)
	s.api = api.New(s.gw)
	return s, nil
}

func resolveCredentials(log *slog.Logger) backend.Credentials {
	token := tokenFlag
	if token == "" {
		token = os.Getenv(config.EnvToken)
	}
	if token != "" {
		return backend.NewStaticToken(token)
	}
	km, err := keychain.GetManager()
	if err != nil {
		log.Warn("keychain unavailable, continuing without a token", "error", err)
		return backend.NewStaticToken("")
	}
	return km
}

// Execute runs the CLI application. Ctrl-C cancels the command context, which
// aborts the in-flight request and any pending retry wait.
// Backend failures have already been shown by the toaster; anything else is printed here.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			pterm.Error.WithWriter(os.Stderr).Println(logging.PresentError(rootCmd.Name(), err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token for this invocation instead of the keychain")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log request diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of tables")
}
