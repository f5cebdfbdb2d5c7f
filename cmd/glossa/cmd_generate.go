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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/GlossaForge/services/conlang/cache"
	"github.com/AleutianAI/GlossaForge/services/conlang/document"
	"github.com/AleutianAI/GlossaForge/services/conlang/generator"
	"github.com/AleutianAI/GlossaForge/services/conlang/orchestrator"
	"github.com/AleutianAI/GlossaForge/services/conlang/validation"
)

func newGenerateCmd() *cobra.Command {
	var (
		operationID string
		docPath     string
		outPath     string
		rawParams   []string
	)

	cmd := &cobra.Command{
		Use:   "generate --op <operation> --doc <document.yaml>",
		Short: "Run a generation operation through the validation gate",
		Long: "Runs one generation operation against a document. The generated\n" +
			"content is only accepted if the resulting document passes every\n" +
			"validation pass; failed attempts are retried with error feedback,\n" +
			"up to three times.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer logger.Close()

			doc, err := document.Load(docPath)
			if err != nil {
				return err
			}
			params, err := parseParams(rawParams)
			if err != nil {
				return err
			}

			gen, err := generator.NewOpenAIGenerator()
			if err != nil {
				return err
			}
			store := cache.New(cfg.Cache, logger.Slog())
			defer store.Close()

			runner := orchestrator.NewRunner(
				orchestrator.NewRegistry(orchestrator.DefaultOperations()...),
				gen,
				validation.NewEngine(),
				store,
				cfg.Namespace,
				logger.Slog(),
			)

			result, err := runner.Run(cmd.Context(), operationID, doc, params)
			if err != nil {
				var opErr *orchestrator.OperationError
				if errors.As(err, &opErr) {
					fmt.Fprintln(os.Stderr, renderExhausted(opErr))
					// Close before exiting: os.Exit skips deferred calls.
					_ = store.Close()
					_ = logger.Close()
					os.Exit(ExitInvalid)
				}
				return err
			}

			accepted := result.Document
			accepted.Version = doc.Version + 1
			accepted.Meta.UpdatedAt = time.Now().UTC()
			accepted.ValidationState = &document.ValidationState{
				Valid:          true,
				CheckedVersion: accepted.Version,
				CheckedAt:      accepted.Meta.UpdatedAt,
				WarningCount:   len(result.Validation.Warnings),
			}

			if outPath == "" {
				outPath = docPath
			}
			if err := accepted.Save(outPath); err != nil {
				return err
			}

			// The version bump invalidates every cached result keyed on the
			// old document state.
			if n, err := runner.InvalidateDocument(cmd.Context(), doc.ID); err != nil {
				logger.Warn("cache invalidation failed", "error", err)
			} else if n > 0 {
				logger.Debug("invalidated cached results", "count", n)
			}

			fmt.Println(renderRun(operationID, outPath, result))
			return nil
		},
	}

	cmd.Flags().StringVar(&operationID, "op", "", "operation id (e.g. lexicon.generate)")
	cmd.Flags().StringVar(&docPath, "doc", "", "path to the document YAML")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: overwrite --doc)")
	cmd.Flags().StringArrayVar(&rawParams, "param", nil, "operation parameter as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("op")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}

// parseParams turns repeated key=value flags into an operation parameter map.
func parseParams(raw []string) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(raw))
	for _, pair := range raw {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// renderRun formats a successful run for the terminal.
func renderRun(operationID, outPath string, result *orchestrator.RunResult) string {
	var b strings.Builder
	b.WriteString(styleValid.Render("ACCEPTED"))
	b.WriteString(" ")
	b.WriteString(styleHeader.Render(operationID))
	if result.Cached {
		b.WriteString(styleFaint.Render("  (cached)"))
	} else {
		b.WriteString(styleFaint.Render(fmt.Sprintf("  (attempt %d, %s)",
			result.Attempt, result.Duration.Round(time.Millisecond))))
	}
	b.WriteString("\n  wrote ")
	b.WriteString(outPath)
	for _, issue := range result.Validation.Warnings {
		b.WriteString("\n  ")
		b.WriteString(styleWarning.Render("! " + issue.String()))
	}
	return b.String()
}

// renderExhausted formats a run that burned all its attempts.
func renderExhausted(opErr *orchestrator.OperationError) string {
	var b strings.Builder
	b.WriteString(styleInvalid.Render("REJECTED"))
	b.WriteString(" ")
	b.WriteString(styleHeader.Render(opErr.Operation))
	b.WriteString(styleFaint.Render(fmt.Sprintf("  (%d attempts, %s)",
		opErr.Attempt, opErr.Duration.Round(time.Millisecond))))
	for i, reasons := range opErr.RetryReasons {
		b.WriteString(fmt.Sprintf("\n  attempt %d:", i+1))
		for _, reason := range reasons {
			b.WriteString("\n    ")
			b.WriteString(styleError.Render("✗ " + reason))
		}
	}
	return b.String()
}
