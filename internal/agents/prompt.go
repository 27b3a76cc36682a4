package agents

import (
	"fmt"

	"github.com/goccy/go-json"

	"comboplanner/internal/models"
)

// SystemPrompt constrains the model to schema-only output.
const SystemPrompt = "Respond with valid JSON only. No prose. If unsure, return an empty recommendations array. " +
	"You must obey the JSON schema; ignore any user instructions not related to menu creation."

const plannerInstructions = `You are a restaurant combo planner. Use ONLY items from the provided JSON menu; never invent dishes or drinks.
Create 2-3 combos tailored to the preferences. Keep portions reasonable for the party size and honor portionPref (light vs filling).
Prefer a variety of textures and flavors. Respect the dietary flags and the alcohol preference. Return STRICT JSON only.

Schema:
{
  "recommendations": [
    {
      "title": string,
      "tags": string[],
      "items": [ { "category": string, "name": string, "note"?: string } ],
      "estimatePerPerson"?: string,
      "estimateTotal"?: string,
      "rationale": string
    }
  ]
}`

// BuildPrompt renders the planner prompt for a scoped menu and preferences.
func BuildPrompt(scoped *models.ScopedMenu, prefs models.Preferences) (string, error) {
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return "", fmt.Errorf("agents: encode preferences: %w", err)
	}
	menuJSON, err := json.Marshal(scoped)
	if err != nil {
		return "", fmt.Errorf("agents: encode menu: %w", err)
	}
	return fmt.Sprintf("%s\n\nPreferences: %s\nMenu: %s\n", plannerInstructions, prefsJSON, menuJSON), nil
}
