// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"examdesk/cli/internal/config"
	"examdesk/cli/internal/keychain"
	"examdesk/cli/internal/terminal"
)

// loginCmd stores a bearer token in the OS keychain. The gateway attaches it to
// every request until the backend rejects it with 401.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Store a bearer token in the OS keychain",
	Long: `The login command saves the bearer token issued by the exam platform in the OS
keychain. The global --token flag supplies it directly; otherwise it is read
from the terminal without echo, or from stdin when piped.

The token is removed automatically when the backend answers 401 Unauthorized.
When --api-url is given it is saved as the default backend for later commands.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(tokenFlag)
		if token == "" {
			var err error
			token, err = promptToken(cmd.ErrOrStderr(), cmd.InOrStdin())
			if err != nil {
				return err
			}
		}
		if token == "" {
			return errors.New("token is required")
		}

		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("open keychain: %w", err)
		}
		if err := km.SaveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		done(cmd, "Token saved to the OS keychain")

		if apiURLFlag != "" {
			if err := config.SaveAPIURL(apiURLFlag); err != nil {
				return fmt.Errorf("save api url: %w", err)
			}
			done(cmd, "Default backend set to %s", apiURLFlag)
		}
		return nil
	},
}

// promptToken reads the token without echo when in is a terminal.
func promptToken(prompt io.Writer, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && terminal.IsInteractive(f) {
		fmt.Fprint(prompt, "Paste token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
