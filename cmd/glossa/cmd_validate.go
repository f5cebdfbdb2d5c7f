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
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/GlossaForge/services/conlang/document"
	"github.com/AleutianAI/GlossaForge/services/conlang/validation"
)

// fileReport pairs one input file with its verdict or load failure.
type fileReport struct {
	Path   string
	Result *validation.Result
	Err    error
}

func newValidateCmd() *cobra.Command {
	var workers int
	var errorsOnly bool

	cmd := &cobra.Command{
		Use:   "validate <document.yaml> [more documents...]",
		Short: "Check documents for internal consistency",
		Long: "Runs every validation pass over each document and prints the\n" +
			"findings. Exit code 0 means all documents are valid, 1 means at\n" +
			"least one is invalid, 2 means a document could not be checked.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			engine := validation.NewEngine()
			reports := make([]fileReport, len(args))
			var mu sync.Mutex

			group, ctx := errgroup.WithContext(cmd.Context())
			group.SetLimit(workers)
			for i, path := range args {
				group.Go(func() error {
					report := validateFile(ctx, engine, path)
					mu.Lock()
					reports[i] = report
					mu.Unlock()
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			exit := ExitSuccess
			for _, report := range reports {
				fmt.Println(renderReport(report, errorsOnly))
				switch {
				case report.Err != nil:
					exit = ExitError
				case !report.Result.Valid && exit != ExitError:
					exit = ExitInvalid
				}
			}
			// Close before exiting: os.Exit skips deferred calls.
			_ = logger.Close()
			os.Exit(exit)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent documents (0 = NumCPU)")
	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "hide warnings from the report")
	return cmd
}

func validateFile(ctx context.Context, engine *validation.Engine, path string) fileReport {
	doc, err := document.Load(path)
	if err != nil {
		return fileReport{Path: path, Err: err}
	}
	result, err := engine.Validate(ctx, doc)
	if err != nil {
		return fileReport{Path: path, Err: err}
	}
	return fileReport{Path: path, Result: result}
}

// sortedModules returns the summary's modules in stable display order.
func sortedModules(summary map[validation.Module]validation.PassOutcome) []validation.Module {
	modules := make([]validation.Module, 0, len(summary))
	for m := range summary {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })
	return modules
}
