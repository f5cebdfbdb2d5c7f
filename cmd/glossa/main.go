// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command glossa is the GlossaForge CLI: validate constructed-language
// documents and run validation-gated generation operations against them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes shared by all subcommands.
const (
	ExitSuccess = 0
	ExitInvalid = 1
	ExitError   = 2
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "glossa",
		Short: "Constructed-language toolkit with validation-gated generation",
		Long: "glossa validates constructed-language documents for internal\n" +
			"consistency and drives generation operations through that validator,\n" +
			"so no generated content is ever accepted unless it checks out.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newGenerateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitError)
	}
}
