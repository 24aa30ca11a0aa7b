// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the Examdesk CLI application.
// It provides a terminal client for the exam platform REST API.
package main

import (
	"examdesk/cli/cmd"
)

func main() {
	cmd.Execute()
}
