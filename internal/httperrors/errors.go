// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns gateway transport and server failures into
// troubleshooting hints for the terminal.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "examdesk/cli/internal/errors"
)

// Explain prints a hint for err when it is a network or server failure and
// reports whether it printed anything. context describes what the CLI was doing
// ("listing exams"); host names the backend.
func Explain(w io.Writer, err error, context, host string) bool {
	switch apperrors.KindOf(err) {
	case apperrors.ServerError:
		showServerError(w, context)
		return true
	case apperrors.Network:
	default:
		return false
	}

	switch {
	case isTimeoutError(err):
		showTimeoutError(w, context)
	case isDNSError(err):
		showDNSError(w, context, host)
	case isConnectionRefusedError(err):
		showConnectionRefusedError(w, context, host)
	case isSSLError(err):
		showSSLError(w, context)
	default:
		showGenericError(w, context, host, err.Error())
	}
	return true
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

func printLines(w io.Writer, lines ...string) {
	for _, l := range lines {
		pterm.Fprintln(w, l)
	}
}

func showTimeoutError(w io.Writer, context string) {
	printLines(w,
		fmt.Sprintf("⏱️  Connection timeout while %s", context),
		"",
		"The server took too long to respond. This could mean:",
		"  • Slow network connection",
		"  • Server is under heavy load",
		"",
		"Raise timeout_ms in the config file or try again in a few moments.",
		"",
	)
}

func showDNSError(w io.Writer, context, host string) {
	printLines(w,
		fmt.Sprintf("🌐 Cannot resolve server address while %s", context),
		"",
		fmt.Sprintf("Unable to look up %s. Please check:", host),
		"  • The api_url setting or --api-url flag",
		"  • Your network connection and DNS settings",
		"",
	)
}

func showConnectionRefusedError(w io.Writer, context, host string) {
	printLines(w,
		fmt.Sprintf("🚫 Connection refused while %s", context),
		"",
		fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host),
		"  • The backend is not running",
		"  • Wrong server address or port",
		"",
	)
}

func showSSLError(w io.Writer, context string) {
	printLines(w,
		fmt.Sprintf("🔒 Secure connection failed while %s", context),
		"",
		"Cannot establish a secure HTTPS connection. This could mean:",
		"  • Certificate issue on the server",
		"  • Network proxy interfering with HTTPS",
		"  • System clock is incorrect",
		"",
	)
}

func showServerError(w io.Writer, context string) {
	printLines(w,
		fmt.Sprintf("⚠️  Server error while %s", context),
		"",
		"The exam platform encountered an internal error after several attempts.",
		"  • Please try again in a few minutes",
		"",
	)
}

func showGenericError(w io.Writer, context, host, details string) {
	printLines(w,
		fmt.Sprintf("❌ Cannot reach %s while %s", host, context),
		"",
		"Please check your network connection and the api_url setting.",
		"",
	)
	if details != "" {
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		printLines(w, "Technical details: "+details, "")
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
