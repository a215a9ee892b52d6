// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Tool is one entry of the tool catalog. The pipeline treats it as
// read-only input.
type Tool struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Href        string   `json:"href" yaml:"href" toml:"href"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Popular     bool     `json:"popular" yaml:"popular" toml:"popular"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
}
