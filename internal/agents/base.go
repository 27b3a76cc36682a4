package agents

import (
	"context"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// AgentRole represents the role of an agent
type AgentRole string

const (
	RoleMenuPlanner AgentRole = "menu_planner"
)

// Agent represents the base interface for all LLM-backed agents
type Agent interface {
	GetRole() AgentRole
	GetModel() llms.Model
	RecentEvents(n int) []Event
}

// BaseAgent provides common functionality for all agents
type BaseAgent struct {
	role   AgentRole
	model  llms.Model
	memory *Memory
}

// Memory is a bounded log of the agent's recent exchanges
type Memory struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// Event represents a single event in the agent's memory
type Event struct {
	Timestamp time.Time
	Type      string
	Content   string
	Metadata  map[string]interface{}
}

const defaultMemoryLimit = 50

// NewBaseAgent creates a new base agent with the specified role and model
func NewBaseAgent(role AgentRole, model llms.Model) *BaseAgent {
	return &BaseAgent{
		role:   role,
		model:  model,
		memory: &Memory{limit: defaultMemoryLimit},
	}
}

// GetRole returns the agent's role
func (a *BaseAgent) GetRole() AgentRole {
	return a.role
}

// GetModel returns the agent's LLM model
func (a *BaseAgent) GetModel() llms.Model {
	return a.model
}

// AddMemory appends an event, dropping the oldest once the limit is reached.
func (a *BaseAgent) AddMemory(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	m := a.memory
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if len(m.events) > m.limit {
		m.events = m.events[len(m.events)-m.limit:]
	}
}

// RecentEvents returns up to n of the newest events, oldest first
func (a *BaseAgent) RecentEvents(n int) []Event {
	m := a.memory
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= 0 || n > len(m.events) {
		n = len(m.events)
	}
	out := make([]Event, n)
	copy(out, m.events[len(m.events)-n:])
	return out
}

// complete sends a system + user exchange and returns the first choice's text.
func (a *BaseAgent) complete(ctx context.Context, system, prompt string, opts ...llms.CallOption) (string, error) {
	if a.model == nil {
		return "", ErrNoModel
	}
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	resp, err := a.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrInvalidResponse
	}
	return resp.Choices[0].Content, nil
}
