// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleValid   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleInvalid = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleFaint   = lipgloss.NewStyle().Faint(true)
)

// renderReport formats one document's verdict for the terminal.
func renderReport(report fileReport, errorsOnly bool) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render(report.Path))
	b.WriteString(" ")

	if report.Err != nil {
		b.WriteString(styleInvalid.Render("FAILED"))
		b.WriteString("\n  ")
		b.WriteString(styleError.Render(report.Err.Error()))
		return b.String()
	}

	result := report.Result
	if result.Valid {
		b.WriteString(styleValid.Render("VALID"))
	} else {
		b.WriteString(styleInvalid.Render("INVALID"))
	}
	b.WriteString(styleFaint.Render(fmt.Sprintf("  %d errors, %d warnings in %s",
		len(result.Errors), len(result.Warnings), result.Duration.Round(time.Millisecond))))

	for _, issue := range result.Errors {
		b.WriteString("\n  ")
		b.WriteString(styleError.Render("✗ " + issue.String()))
	}
	if !errorsOnly {
		for _, issue := range result.Warnings {
			b.WriteString("\n  ")
			b.WriteString(styleWarning.Render("! " + issue.String()))
		}
	}

	for _, module := range sortedModules(result.Summary) {
		outcome := result.Summary[module]
		b.WriteString("\n  ")
		b.WriteString(styleFaint.Render(fmt.Sprintf("%-10s %d errors, %d warnings",
			module, outcome.Errors, outcome.Warnings)))
	}
	return b.String()
}
