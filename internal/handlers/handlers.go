// Package handlers implements the HTTP API of the LMS backend. Each handler
// validates the request body, builds a prompt, forwards it to a Bedrock
// agent and passes the agent's JSON reply through unmodified.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skillpath-labs/lms-backend/internal/agents"
	"github.com/skillpath-labs/lms-backend/internal/config"
	"github.com/skillpath-labs/lms-backend/internal/prompts"
	"github.com/skillpath-labs/lms-backend/pkg/logger"
)

// Invoker abstracts the Bedrock agent invoker so handlers can be tested
// against a mock.
type Invoker interface {
	Invoke(ctx context.Context, agent agents.Agent, prompt string) (json.RawMessage, error)
}

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	log     logger.Logger
	invoker Invoker
	agents  config.AgentsConfig
}

// New creates a Handler.
func New(log logger.Logger, invoker Invoker, agentsCfg config.AgentsConfig) *Handler {
	return &Handler{
		log:     log,
		invoker: invoker,
		agents:  agentsCfg,
	}
}

// Routes mounts the API endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/health", h.Health)
	r.Post("/api/courses/generate", h.GenerateCoursePlan)
	r.Post("/api/course/content", h.GetTopicContent)
	r.Post("/api/quiz/generate", h.GenerateQuiz)
	r.Post("/api/chatbot/query", h.ChatbotQuery)
}

// Health reports that the server is up. The frontend polls this endpoint
// directly; the Kubernetes probes live under /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "LMS backend is healthy and running.",
	})
}

// GenerateCoursePlan builds a personalized learning plan from the user's
// professional profile via the course-creator agent.
func (h *Handler) GenerateCoursePlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Experience   any `json:"experience"`
		TechStack    any `json:"techStack"`
		ExpectedRole any `json:"expectedRole"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	experience := fieldString(body.Experience)
	techStack := fieldString(body.TechStack)
	expectedRole := fieldString(body.ExpectedRole)
	if experience == "" || techStack == "" || expectedRole == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: experience, techStack, expectedRole", nil)
		return
	}

	prompt := prompts.CoursePlan(experience, techStack, expectedRole)
	plan, err := h.invoker.Invoke(r.Context(), h.agents.CourseCreator(), prompt)
	if err != nil {
		h.writeAgentError(w, r, "Failed to generate course plan from agent.", err)
		return
	}

	writeRawJSON(w, http.StatusOK, plan)
}

// GetTopicContent fetches the learning content for one topic of a course
// via the trainer agent.
func (h *Handler) GetTopicContent(w http.ResponseWriter, r *http.Request) {
	courseTitle, topicTitle, ok := decodeTopicRequest(w, r)
	if !ok {
		return
	}

	prompt := prompts.TopicContent(courseTitle, topicTitle)
	content, err := h.invoker.Invoke(r.Context(), h.agents.Trainer(), prompt)
	if err != nil {
		h.writeAgentError(w, r, "Failed to fetch topic content from agent.", err)
		return
	}

	writeRawJSON(w, http.StatusOK, content)
}

// GenerateQuiz produces a 3-question multiple-choice quiz for a topic via
// the trainer agent.
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	courseTitle, topicTitle, ok := decodeTopicRequest(w, r)
	if !ok {
		return
	}

	prompt := prompts.Quiz(courseTitle, topicTitle)
	quiz, err := h.invoker.Invoke(r.Context(), h.agents.Trainer(), prompt)
	if err != nil {
		h.writeAgentError(w, r, "Failed to generate quiz from agent.", err)
		return
	}

	writeRawJSON(w, http.StatusOK, quiz)
}

// ChatbotQuery answers a free-form student question via the trainer agent.
func (h *Handler) ChatbotQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	query := strings.TrimSpace(body.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: query", nil)
		return
	}

	prompt := prompts.ChatbotAnswer(query)
	answer, err := h.invoker.Invoke(r.Context(), h.agents.Trainer(), prompt)
	if err != nil {
		h.writeAgentError(w, r, "Failed to get answer from agent.", err)
		return
	}

	writeRawJSON(w, http.StatusOK, answer)
}

// decodeTopicRequest decodes the shared {courseTitle, topicTitle} body used
// by the content and quiz endpoints. On failure it writes the error response
// and returns ok=false.
func decodeTopicRequest(w http.ResponseWriter, r *http.Request) (courseTitle, topicTitle string, ok bool) {
	var body struct {
		CourseTitle string `json:"courseTitle"`
		TopicTitle  string `json:"topicTitle"`
	}
	if !decodeBody(w, r, &body) {
		return "", "", false
	}

	courseTitle = strings.TrimSpace(body.CourseTitle)
	topicTitle = strings.TrimSpace(body.TopicTitle)
	if courseTitle == "" || topicTitle == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: courseTitle, topicTitle", nil)
		return "", "", false
	}
	return courseTitle, topicTitle, true
}

// decodeBody decodes the request body into dest. On failure it writes a 400
// response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be a valid JSON", nil)
		return false
	}
	return true
}

// fieldString renders a JSON value the way it should appear inside a prompt.
// Profiles arrive from the frontend with experience sometimes as a number
// and sometimes as a string, so the field is accepted either way.
func fieldString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// writeAgentError maps an invocation failure onto an HTTP status code and
// logs it with the request's correlation ID.
func (h *Handler) writeAgentError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log := logger.GetLoggerFromContext(r.Context(), h.log)
	log.Error(msg, logger.ErrorField(err))

	status := http.StatusInternalServerError
	if errors.Is(err, agents.ErrMalformedCompletion) {
		// The upstream agent replied, but not with JSON
		status = http.StatusBadGateway
	}
	writeError(w, status, msg, err)
}
