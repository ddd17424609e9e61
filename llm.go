package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const geminiModelName = "gemini-2.5-pro"

var errEmptyModelResponse = errors.New("empty agent response")

// textGenerator is the single-turn model contract the pipeline depends on.
// Parts may mix text and inline data (image bytes for OCR).
type textGenerator interface {
	Generate(ctx context.Context, userID string, parts ...*genai.Part) (string, error)
}

func textPart(text string) *genai.Part {
	return &genai.Part{Text: text}
}

// Agent wraps an adk llm agent with its runner and session service. Each
// Generate call runs in a fresh session that is deleted afterwards.
type Agent struct {
	name     string
	runner   *runner.Runner
	sessions session.Service
}

var _ textGenerator = (*Agent)(nil)

func newAgent(ctx context.Context, apiKey, name, description, instruction string) (*Agent, error) {
	model, err := gemini.NewModel(ctx, geminiModelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	llmAgent, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       model,
		Description: description,
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        name,
		Agent:          llmAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Agent{name: name, runner: r, sessions: sessions}, nil
}

// Generate sends one message to the agent and returns the final response
// text. Transient failures are retried once before giving up.
func (a *Agent) Generate(ctx context.Context, userID string, parts ...*genai.Part) (string, error) {
	return retry(2, func() (string, error) {
		return a.generate(ctx, userID, parts...)
	})
}

func (a *Agent) generate(ctx context.Context, userID string, parts ...*genai.Part) (string, error) {
	sessionID := uuid.NewString()

	agentSession, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.name,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		_ = a.sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   a.name,
			UserID:    agentSession.Session.UserID(),
			SessionID: agentSession.Session.ID(),
		})
	}()

	stream := a.runner.Run(ctx, agentSession.Session.UserID(), agentSession.Session.ID(), &genai.Content{
		Role:  "user",
		Parts: parts,
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}

	if output == "" {
		return "", errEmptyModelResponse
	}
	return output, nil
}
