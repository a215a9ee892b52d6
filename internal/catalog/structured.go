// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Structured catalogs hold either a top-level list of records or a table
// whose collection key holds the list. Each record is decoded on its own so
// one bad record does not discard the rest.

func decodeYAML(data []byte, collection string) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	list := doc.Content[0]
	if list.Kind == yaml.MappingNode {
		list = mappingValue(list, collection)
		if list == nil {
			return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
		}
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: expected a list at line %d", collection, list.Line)
	}

	entries := make([]entry, len(list.Content))
	for i, item := range list.Content {
		entries[i].err = item.Decode(&entries[i].raw)
	}
	return entries, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func decodeJSON(data []byte, collection string) ([]entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	} else {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		raw, ok := obj[collection]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
	}

	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i].err = json.Unmarshal(item, &entries[i].raw)
	}
	return entries, nil
}

// decodeTOML reads an array of tables named after the collection, e.g.
// [[tools]]. TOML has no top-level arrays.
func decodeTOML(data []byte, collection string) ([]entry, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, nil
	}

	value, ok := doc[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an array of tables, got %T", collection, value)
	}

	entries := make([]entry, len(items))
	for i, item := range items {
		table, ok := item.(map[string]any)
		if !ok {
			entries[i].err = fmt.Errorf("expected a table, got %T", item)
			continue
		}
		b, err := toml.Marshal(table)
		if err != nil {
			entries[i].err = err
			continue
		}
		entries[i].err = toml.Unmarshal(b, &entries[i].raw)
	}
	return entries, nil
}
