// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openaiSecretPath = "/run/secrets/openai_api_key"

// systemPrompt pins the response contract: structured JSON only. Prompt
// content describing the linguistics of each operation is supplied by the
// caller through the request payload, not baked in here.
const systemPrompt = "You are a constructed-language assistant. " +
	"Respond with a single JSON object of the form " +
	`{"operation": <string>, "payload": <object>}` +
	" where payload matches the requested operation. Never respond with prose."

// OpenAIGenerator calls the OpenAI chat completion API in JSON mode.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator from the environment.
//
// Description:
//
//	Reads OPENAI_API_KEY, falling back to the container secret file, and
//	OPENAI_MODEL (default gpt-4o-mini).
//
// Outputs:
//
//	*OpenAIGenerator - The configured generator.
//	error - Non-nil when no API key can be found.
func NewOpenAIGenerator() (*OpenAIGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if apiKey == "" {
		raw, err := os.ReadFile(openaiSecretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(raw))
			slog.Info("Read the OpenAI API key from secrets")
		} else {
			slog.Error("OPENAI_API_KEY environment variable not set and secret not found", "path", openaiSecretPath)
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}
	slog.Info("Initializing OpenAI generator", "model", model)
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Generate implements the Generator interface.
func (g *OpenAIGenerator) Generate(ctx context.Context, req *Request, previousErrors []string) (*Response, error) {
	slog.Debug("Generating via OpenAI", "model", g.model, "operation", req.Operation, "retry", len(previousErrors) > 0)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding generation request: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: string(body)},
	}
	if len(previousErrors) > 0 {
		feedback := "Your previous attempt failed validation:\n- " +
			strings.Join(previousErrors, "\n- ") +
			"\nProduce a corrected response for the same request."
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser, Content: feedback,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		slog.Error("OpenAI API call failed", "error", err)
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI returned no choices")
	}

	var out Response
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("OpenAI response is not valid operation JSON: %w", err)
	}
	if out.Operation == "" {
		out.Operation = req.Operation
	}
	slog.Debug("Received response from OpenAI", "finish_reason", resp.Choices[0].FinishReason)
	return &out, nil
}
