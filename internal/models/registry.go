package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrUnknownModel is returned for an id that is not registered.
var ErrUnknownModel = errors.New("unknown model")

// ProviderType represents the type of LLM provider
type ProviderType string

const (
	OpenAIProvider       ProviderType = "openai"
	AzureOpenAIProvider  ProviderType = "azure"
	GitHubModelsProvider ProviderType = "github_models"
	AnthropicProvider    ProviderType = "anthropic"
	OllamaProvider       ProviderType = "ollama"
)

// GitHubModelsEndpoint is the OpenAI-compatible inference endpoint for GitHub Models
const GitHubModelsEndpoint = "https://models.inference.ai.azure.com"

// ModelCredentials holds API keys and other auth details
type ModelCredentials struct {
	APIKey string
}

// ModelProvider defines a supported LLM provider
type ModelProvider struct {
	Name        string
	Type        ProviderType
	Endpoint    string
	APIVersion  string
	Credentials ModelCredentials
}

// ModelInfo describes a registered model for listing
type ModelInfo struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Provider ProviderType `json:"provider"`
}

// ModelRegistry manages available LLM models
type ModelRegistry struct {
	providers map[string]ModelProvider
	instances map[string]llms.Model
	mu        sync.RWMutex
}

// NewModelRegistry creates a new model registry
func NewModelRegistry(providers map[string]ModelProvider) *ModelRegistry {
	r := &ModelRegistry{
		providers: make(map[string]ModelProvider, len(providers)),
		instances: make(map[string]llms.Model),
	}
	for id, p := range providers {
		r.providers[id] = p
	}
	return r
}

// Register adds a ready-made model instance under an id.
func (r *ModelRegistry) Register(id string, provider ModelProvider, model llms.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = provider
	r.instances[id] = model
}

// List returns the registered models sorted by id
func (r *ModelRegistry) List() []ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ModelInfo, 0, len(r.providers))
	for id, p := range r.providers {
		infos = append(infos, ModelInfo{ID: id, Name: p.Name, Provider: p.Type})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// GetModel returns an initialized LLM instance
func (r *ModelRegistry) GetModel(id string) (llms.Model, error) {
	r.mu.RLock()
	model, exists := r.instances[id]
	provider, known := r.providers[id]
	r.mu.RUnlock()
	if exists {
		return model, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}

	model, err := r.initializeModel(provider)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.instances[id]; ok {
		return cached, nil
	}
	r.instances[id] = model
	return model, nil
}

// initializeModel creates a new LLM instance based on provider type
func (r *ModelRegistry) initializeModel(provider ModelProvider) (llms.Model, error) {
	switch provider.Type {
	case OpenAIProvider, "":
		return r.initializeOpenAI(provider)
	case AzureOpenAIProvider:
		return r.initializeAzure(provider)
	case GitHubModelsProvider:
		return r.initializeGitHubModels(provider)
	case AnthropicProvider:
		return r.initializeAnthropic(provider)
	case OllamaProvider:
		return r.initializeOllama(provider)
	default:
		return nil, fmt.Errorf("unsupported model type: %s", provider.Type)
	}
}

func apiKey(provider ModelProvider, envVar string) (string, error) {
	if provider.Credentials.APIKey != "" {
		return provider.Credentials.APIKey, nil
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%s environment variable not set", envVar)
}

// initializeOpenAI creates an OpenAI LLM instance
func (r *ModelRegistry) initializeOpenAI(provider ModelProvider) (llms.Model, error) {
	key, err := apiKey(provider, "OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithModel(provider.Name),
		openai.WithToken(key),
	}
	if provider.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(provider.Endpoint))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI model: %w", err)
	}
	return llm, nil
}

// initializeAzure creates an Azure OpenAI LLM instance through the OpenAI client
func (r *ModelRegistry) initializeAzure(provider ModelProvider) (llms.Model, error) {
	key, err := apiKey(provider, "AZURE_OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}
	if provider.Endpoint == "" {
		return nil, fmt.Errorf("azure provider requires an endpoint")
	}

	version := provider.APIVersion
	if version == "" {
		version = "2024-06-01"
	}

	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(provider.Endpoint),
		openai.WithAPIVersion(version),
		openai.WithModel(provider.Name),
		openai.WithToken(key),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Azure OpenAI model: %w", err)
	}
	return llm, nil
}

// initializeGitHubModels creates a GitHub Models LLM instance
func (r *ModelRegistry) initializeGitHubModels(provider ModelProvider) (llms.Model, error) {
	key, err := apiKey(provider, "GITHUB_TOKEN")
	if err != nil {
		return nil, err
	}

	endpoint := provider.Endpoint
	if endpoint == "" {
		endpoint = GitHubModelsEndpoint
	}

	llm, err := openai.New(
		openai.WithBaseURL(endpoint),
		openai.WithModel(provider.Name),
		openai.WithToken(key),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GitHub model: %w", err)
	}
	return llm, nil
}

// initializeAnthropic creates an Anthropic LLM instance
func (r *ModelRegistry) initializeAnthropic(provider ModelProvider) (llms.Model, error) {
	key, err := apiKey(provider, "ANTHROPIC_API_KEY")
	if err != nil {
		return nil, err
	}

	opts := []anthropic.Option{
		anthropic.WithModel(provider.Name),
		anthropic.WithToken(key),
	}
	if provider.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(provider.Endpoint))
	}

	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Anthropic model: %w", err)
	}
	return llm, nil
}

// initializeOllama creates a local Ollama LLM instance
func (r *ModelRegistry) initializeOllama(provider ModelProvider) (llms.Model, error) {
	opts := []ollama.Option{ollama.WithModel(provider.Name)}
	if provider.Endpoint != "" {
		opts = append(opts, ollama.WithServerURL(provider.Endpoint))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Ollama model: %w", err)
	}
	return llm, nil
}

// CheckModel sends a short prompt to confirm the model answers.
func (r *ModelRegistry) CheckModel(ctx context.Context, id string) error {
	model, err := r.GetModel(id)
	if err != nil {
		return err
	}
	if _, err := llms.GenerateFromSinglePrompt(ctx, model, "Reply with the single word ok."); err != nil {
		return fmt.Errorf("check model %s: %w", id, err)
	}
	return nil
}
