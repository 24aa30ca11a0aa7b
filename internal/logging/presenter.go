// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	apperrors "examdesk/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(apperrors.Message(err)))
}

// Toaster shows transient one-line notifications in the terminal.
// It satisfies the fetch bridge notifier contract.
type Toaster struct {
	printer *pterm.PrefixPrinter
}

// NewToaster returns a toaster writing error toasts to w.
func NewToaster(w io.Writer) *Toaster {
	return &Toaster{printer: pterm.Error.WithWriter(w)}
}

// Notify prints msg as an error toast.
func (t *Toaster) Notify(msg string) {
	t.printer.Println(Mask(msg))
}
