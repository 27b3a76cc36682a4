package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// ApiClient talks to the combo planner HTTP API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client. COMBO_API_URL overrides the base URL.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("COMBO_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &ApiClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Query is the request body accepted by POST /api/v1/combos
type Query struct {
	Meal        string   `json:"meal"`
	PartySize   int      `json:"partySize"`
	Diet        []string `json:"diet"`
	Spice       string   `json:"spice"`
	Alcohol     string   `json:"alcohol"`
	PortionPref string   `json:"portionPref"`
	Budget      *float64 `json:"budget,omitempty"`
	Variant     int      `json:"_variant"`
}

// ComboItem is one line of a recommended combo
type ComboItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Note     string `json:"note,omitempty"`
}

// Combo is a recommended combo as returned by the API
type Combo struct {
	Title             string      `json:"title"`
	Tags              []string    `json:"tags"`
	Items             []ComboItem `json:"items"`
	EstimatePerPerson string      `json:"estimatePerPerson"`
	EstimateTotal     string      `json:"estimateTotal"`
	Rationale         string      `json:"rationale"`
}

// Result is the response body of POST /api/v1/combos
type Result struct {
	Recommendations []Combo `json:"recommendations"`
	Strategy        string  `json:"strategy,omitempty"`
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status code: %d", resp.StatusCode)
	}
	return nil
}

// Recommend posts the query and decodes the recommendations
func (c *ApiClient) Recommend(ctx context.Context, q Query) (*Result, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/combos", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommend failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Recommendations == nil {
		result.Recommendations = []Combo{}
	}
	return &result, nil
}
