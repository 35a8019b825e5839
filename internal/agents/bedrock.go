// Package agents invokes the hosted AWS Bedrock agents that perform the
// actual course generation, quiz authoring and chatbot answering.
package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/skillpath-labs/lms-backend/pkg/logger"
	"github.com/skillpath-labs/lms-backend/pkg/metrics"
	"github.com/skillpath-labs/lms-backend/pkg/prefixed_uuid"
)

// Errors the handlers map onto HTTP status codes.
var (
	// ErrNotConfigured indicates the agent ID or alias ID is missing from configuration.
	ErrNotConfigured = errors.New("agent ID and/or agent alias ID are not configured")

	// ErrEmptyCompletion indicates the agent returned no text at all.
	ErrEmptyCompletion = errors.New("agent returned an empty response")

	// ErrMalformedCompletion indicates the agent text did not contain a JSON document.
	ErrMalformedCompletion = errors.New("agent returned a malformed JSON response")
)

// AgentRuntimeClient is the subset of the Bedrock agent runtime API the
// invoker needs. The real *bedrockagentruntime.Client satisfies it.
type AgentRuntimeClient interface {
	InvokeAgent(ctx context.Context, params *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// Agent identifies a deployed Bedrock agent by ID and alias.
type Agent struct {
	// Name is used for logging and metrics labels, e.g. "course_creator".
	Name string

	// ID is the Bedrock agent identifier.
	ID string

	// AliasID is the Bedrock agent alias identifier.
	AliasID string
}

// Configured reports whether the agent has both identifiers set.
func (a Agent) Configured() error {
	if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.AliasID) == "" {
		return fmt.Errorf("%w: %s", ErrNotConfigured, a.Name)
	}
	return nil
}

// Invoker sends prompts to Bedrock agents and assembles their streamed replies.
type Invoker struct {
	client  AgentRuntimeClient
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewInvoker creates an Invoker on top of a Bedrock agent runtime client.
// The metrics instance is optional.
func NewInvoker(client AgentRuntimeClient, log logger.Logger, m *metrics.Metrics) *Invoker {
	return &Invoker{
		client:  client,
		log:     log,
		metrics: m,
	}
}

// Invoke sends the prompt to the agent and returns the JSON document the
// agent replied with. Every call opens a fresh session: the remote agent API
// is stateful, but this backend keeps no conversation state of its own.
func (i *Invoker) Invoke(ctx context.Context, agent Agent, prompt string) (json.RawMessage, error) {
	if err := agent.Configured(); err != nil {
		return nil, err
	}

	sessionID := prefixed_uuid.New("session").String()
	log := logger.GetLoggerFromContext(ctx, i.log).WithFields(
		logger.AgentField(agent.Name),
		logger.SessionIDField(sessionID),
	)
	log.Debug("Invoking Bedrock agent", logger.IntField("prompt_chars", len(prompt)))

	start := time.Now()
	raw, err := i.invoke(ctx, agent, sessionID, prompt)
	if i.metrics != nil {
		i.metrics.ObserveAgentInvocation(agent.Name, time.Since(start), err)
	}
	if err != nil {
		log.Error("Bedrock agent invocation failed", logger.ErrorField(err))
		return nil, err
	}

	log.Debug("Bedrock agent invocation completed",
		logger.DurationField("duration", time.Since(start)),
		logger.IntField("response_bytes", len(raw)))
	return raw, nil
}

func (i *Invoker) invoke(ctx context.Context, agent Agent, sessionID, prompt string) (json.RawMessage, error) {
	out, err := i.client.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(agent.ID),
		AgentAliasId: aws.String(agent.AliasID),
		SessionId:    aws.String(sessionID),
		InputText:    aws.String(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock InvokeAgent: %w", err)
	}

	stream := out.GetStream()
	defer func() { _ = stream.Close() }()

	text := collectCompletion(stream.Events())
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("bedrock completion stream: %w", err)
	}

	return parseCompletion(text)
}

// collectCompletion concatenates the text chunks of a completion event stream.
func collectCompletion(events <-chan types.ResponseStream) string {
	var sb strings.Builder
	for event := range events {
		chunk, ok := event.(*types.ResponseStreamMemberChunk)
		if !ok {
			continue
		}
		sb.Write(chunk.Value.Bytes)
	}
	return sb.String()
}

// parseCompletion validates the assembled agent text and extracts the JSON
// document the agents are instructed to reply with.
func parseCompletion(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyCompletion
	}

	// Agents occasionally wrap the JSON in whitespace or stray prose.
	jsonStr := extractFirstJSONObject(text)
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedCompletion)
	}
	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedCompletion, truncate(jsonStr, 200))
	}
	return json.RawMessage(jsonStr), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// extractFirstJSONObject finds the first balanced {...} block. It does not
// account for braces inside string literals; the agents are prompted to
// return a clean JSON object, so this only has to strip surrounding text.
func extractFirstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
