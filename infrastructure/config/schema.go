package config

import (
	"encoding/json"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema      string                 `json:"$schema,omitempty"`
	ID          string                 `json:"$id,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Items       *JSONSchema            `json:"items,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Default     any                    `json:"default,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Maximum     *float64               `json:"maximum,omitempty"`
	Pattern     string                 `json:"pattern,omitempty"`
}

func float(v float64) *float64 { return &v }

// GenerateSchema generates a JSON Schema for the ExperimentConfig.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/felixgeelhaar/haggle-go/haggle-config.schema.json",
		Title:       "Experiment Configuration",
		Description: "Configuration schema for the haggle-go negotiation experiment",
		Type:        "object",
		Required:    []string{"name", "version"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "A human-readable name for this configuration",
			},
			"version": {
				Type:        "string",
				Description: "The configuration schema version",
				Default:     "1.0",
			},
			"description": {
				Type:        "string",
				Description: "Describes the experiment arm",
			},
			"mode": {
				Type:        "string",
				Description: "The seller persona condition",
				Enum:        []string{"neutral", "power"},
				Default:     "neutral",
			},
			"seed": {
				Type:        "integer",
				Description: "Seed for wording selection; zero means time-seeded",
			},
			"deterministic": {
				Type:        "boolean",
				Description: "Pins wording selection to the first bank line",
			},
			"policy":   generatePolicySchema(),
			"logging":  generateLoggingSchema(),
			"storage":  generateStorageSchema(),
			"rephrase": generateRephraseSchema(),
		},
	}
}

func generatePolicySchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Overrides the negotiation policy",
		Properties: map[string]*JSONSchema{
			"item":              {Type: "string", Description: "The label the outcome log records"},
			"list_price":        {Type: "integer", Description: "The public anchor", Minimum: float(1)},
			"reservation_price": {Type: "integer", Description: "The hidden floor", Minimum: float(1)},
			"max_rounds":        {Type: "integer", Description: "Cap on priced buyer messages", Minimum: float(1)},
			"max_bot_turns":     {Type: "integer", Description: "Safety net on seller turns", Minimum: float(1)},
			"deadline":          {Type: "string", Description: "Wall-clock negotiation limit", Pattern: `^\d+(ns|us|µs|ms|s|m|h)`},
		},
	}
}

func generateLoggingSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Logging settings",
		Properties: map[string]*JSONSchema{
			"level": {
				Type: "string",
				Enum: []string{"trace", "debug", "info", "warn", "error", "fatal"},
			},
			"format": {
				Type: "string",
				Enum: []string{"json", "console"},
			},
		},
	}
}

func generateStorageSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Persistence settings",
		Properties: map[string]*JSONSchema{
			"backend": {
				Type: "string",
				Enum: []string{"memory", "csv", "sqlite"},
			},
			"dir": {Type: "string", Description: "Log directory for the csv backend"},
			"dsn": {Type: "string", Description: "Data source name for the sqlite backend"},
		},
	}
}

func generateRephraseSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Optional LLM rewording settings",
		Properties: map[string]*JSONSchema{
			"enabled": {Type: "boolean"},
			"provider": {
				Type: "string",
				Enum: []string{"none", "gemini", "mock"},
			},
			"model":       {Type: "string"},
			"api_key":     {Type: "string"},
			"timeout":     {Type: "string", Pattern: `^\d+(ns|us|µs|ms|s|m|h)`},
			"temperature": {Type: "number", Minimum: float(0), Maximum: float(2)},
			"max_tokens":  {Type: "integer", Minimum: float(1)},
		},
	}
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(GenerateSchema(), "", "  ")
}
