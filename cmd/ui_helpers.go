// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "examdesk/cli/internal/errors"
	"examdesk/cli/internal/fetch"
	"examdesk/cli/internal/httperrors"
	"examdesk/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// reportedError marks a failure the user has already been shown.
type reportedError struct{ err error }

func (r reportedError) Error() string { return r.err.Error() }
func (r reportedError) Unwrap() error { return r.err }

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal. The returned function stops the spinner and
// clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	line := func(i int) string {
		return terminal.Truncate(fmt.Sprintf("%s %s", frames[i%len(frames)], text), terminal.Width(w)-1)
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				terminal.ClearLine(w, len([]rune(line(i))))
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line(i))
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

// bindSpinner shows the spinner on w while the bridge is loading. Nothing is
// drawn when w is not a terminal. The returned function detaches it.
func bindSpinner[A, T any](b *fetch.Bridge[A, T], w io.Writer, text string) func() {
	if !terminal.IsInteractive(w) {
		return func() {}
	}
	var mu sync.Mutex
	var stop func()
	halt := func() {
		if stop != nil {
			stop()
			stop = nil
		}
	}
	unsubscribe := b.Subscribe(func(st fetch.State[T]) {
		mu.Lock()
		defer mu.Unlock()
		if st.Loading && stop == nil {
			stop = startInlineSpinner(w, text, spinnerFrames, 120*time.Millisecond)
		} else if !st.Loading {
			halt()
		}
	})
	return func() {
		unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		halt()
	}
}

// call runs fn through a fetch bridge: the spinner shows while it is loading
// and a failure is toasted, followed by a troubleshooting hint where one applies.
// The returned error is marked as already reported.
func call[T any](cmd *cobra.Command, s *session, label string, fn func(context.Context) (T, error)) (T, error) {
	errOut := cmd.ErrOrStderr()
	b := fetch.New(func(ctx context.Context, _ struct{}) (T, error) { return fn(ctx) }, fetch.WithNotifier(s.toaster))
	detach := bindSpinner(b, errOut, label)
	out, err := b.Execute(cmd.Context(), struct{}{})
	detach()
	if err == nil {
		return out, nil
	}

	httperrors.Explain(errOut, err, strings.ToLower(label), httperrors.ExtractHostFromURL(s.gw.BaseURL()))
	if apperrors.Is(err, apperrors.Unauthorized) {
		pterm.Info.WithWriter(errOut).Println("The stored token was rejected and has been removed. Run: examdesk login")
	}
	return out, reportedError{err: err}
}

// quietCall is call without spinner or toast, for best-effort lookups.
func quietCall[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	b := fetch.New(func(ctx context.Context, _ struct{}) (T, error) { return fn(ctx) }, fetch.Silent())
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return b.Execute(ctx, struct{}{})
}

// render prints v as indented JSON under --json, otherwise as a table whose
// first row is the header.
func render(cmd *cobra.Command, v any, rows func() pterm.TableData) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	data := rows()
	if len(data) <= 1 {
		pterm.Fprintln(out, "No results.")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(out).Render()
}

// renderRecord prints v as JSON or as a two-column field table.
func renderRecord(cmd *cobra.Command, v any, fields [][]string) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return pterm.DefaultTable.WithBoxed().WithData(pterm.TableData(fields)).WithWriter(out).Render()
}

// done prints a success line unless JSON output was requested.
func done(cmd *cobra.Command, format string, args ...any) {
	if jsonOutput {
		return
	}
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln(format, args...)
}

func parseID(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return n, nil
}

func optInt(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func optFloat(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func optBool(p *bool) string {
	if p == nil {
		return "-"
	}
	return yesNo(*p)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return terminal.Truncate(s, 48)
}
