// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"strings"

	"github.com/tulz/tulz-content/pkg/types"
)

// rawTool is one catalog record as decoded, before validation.
type rawTool struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Href        string   `json:"href" yaml:"href" toml:"href"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Popular     bool     `json:"popular" yaml:"popular" toml:"popular"`
	Features    []string `json:"features" yaml:"features" toml:"features"`
}

// entry pairs a decoded record with the error from decoding it, if any.
type entry struct {
	raw rawTool
	err error
}

// validate converts an entry into a Tool, or lists the problems that
// prevent it.
func validate(e entry) (types.Tool, []string) {
	if e.err != nil {
		return types.Tool{}, []string{fmt.Sprintf("decoding: %v", e.err)}
	}

	r := e.raw
	var problems []string
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(r.Href) == "" {
		problems = append(problems, "href is required")
	}
	if len(problems) > 0 {
		return types.Tool{}, problems
	}

	features := make([]string, 0, len(r.Features))
	for _, f := range r.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	return types.Tool{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Href:        strings.TrimSpace(r.Href),
		Category:    strings.TrimSpace(r.Category),
		Popular:     r.Popular,
		Features:    features,
	}, nil
}
