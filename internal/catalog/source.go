// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Script-source extraction. The collection must be declared as a literal
// array of object literals:
//
//	export const tools: Tool[] = [
//	  { name: "JSON Formatter", description: "...", href: "/tools/json", category: "dev" },
//	]
//
// Records are split by bracket matching that honors string literals and
// comments. Fields are read from the top level of each object with quoted
// string patterns; values built from expressions are not recovered.

var errUnbalanced = errors.New("unbalanced brackets in collection")

const quotedValue = `(?:"((?:\\.|[^"\\])*)"|'((?:\\.|[^'\\])*)'|` + "`([^`]*)`)"

var (
	nameField        = stringField("name")
	descriptionField = stringField("description")
	hrefField        = stringField("href")
	categoryField    = stringField("category")

	popularField  = regexp.MustCompile(`(?:^|[\s,])["']?popular["']?\s*:\s*(true|false)\b`)
	featuresField = regexp.MustCompile(`(?:^|[\s,])["']?features["']?\s*:\s*\[([^\]]*)\]`)
	quotedString  = regexp.MustCompile(quotedValue)
)

func stringField(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[\s,])["']?` + key + `["']?\s*:\s*` + quotedValue)
}

func declaration(collection string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)(?:^|[\s;])(?:export\s+)?(?:const|let|var)\s+` +
		regexp.QuoteMeta(collection) + `\b[^=\n]*=\s*`)
}

func extractSource(src, collection string) ([]entry, error) {
	loc := declaration(collection).FindStringIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("%w: no declaration of %q", ErrCollectionNotFound, collection)
	}
	start := loc[1]
	if start >= len(src) || src[start] != '[' {
		return nil, fmt.Errorf("%w: %q is not an array literal", ErrCollectionNotFound, collection)
	}

	records, err := splitRecords(src, start)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, len(records))
	for i, rec := range records {
		entries[i].raw = rawTool{
			Name:        matchString(nameField, rec),
			Description: matchString(descriptionField, rec),
			Href:        matchString(hrefField, rec),
			Category:    matchString(categoryField, rec),
			Popular:     matchPopular(rec),
			Features:    matchFeatures(rec),
		}
	}
	return entries, nil
}

// splitRecords scans the array literal opening at src[start] and returns
// the top-level text of each object element. Text inside nested objects is
// dropped so their keys cannot shadow the record's own fields; nested
// arrays are kept.
func splitRecords(src string, start int) ([]string, error) {
	var (
		records []string
		cur     strings.Builder
		stack   []byte
		nested  int
		quote   byte
	)
	capturing := func() bool {
		return len(stack) >= 2 && stack[1] == '{' && nested == 0
	}

	for i := start; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			if capturing() {
				cur.WriteByte(c)
			}
			switch c {
			case '\\':
				if i+1 < len(src) {
					i++
					if capturing() {
						cur.WriteByte(src[i])
					}
				}
			case quote:
				quote = 0
			}
			continue
		}

		if c == '/' && i+1 < len(src) {
			switch src[i+1] {
			case '/':
				j := strings.IndexByte(src[i:], '\n')
				if j < 0 {
					return nil, errUnbalanced
				}
				i += j - 1
				continue
			case '*':
				j := strings.Index(src[i+2:], "*/")
				if j < 0 {
					return nil, fmt.Errorf("unterminated comment at offset %d", i)
				}
				i += j + 3
				continue
			}
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '[', '{':
			if len(stack) >= 2 && c == '{' {
				nested++
			}
			write := capturing()
			stack = append(stack, c)
			if write {
				cur.WriteByte(c)
			}
			continue
		case ']', '}':
			if len(stack) == 0 || !matches(stack[len(stack)-1], c) {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", errUnbalanced, c, i)
			}
			stack = stack[:len(stack)-1]
			if c == '}' && len(stack) >= 2 {
				nested--
			}
			switch {
			case len(stack) == 0:
				return records, nil
			case len(stack) == 1 && c == '}':
				records = append(records, cur.String())
				cur.Reset()
			case c == ']' && capturing():
				cur.WriteByte(c)
			}
			continue
		}

		if capturing() {
			cur.WriteByte(c)
		}
	}
	return nil, errUnbalanced
}

func matches(open, closing byte) bool {
	return (open == '[' && closing == ']') || (open == '{' && closing == '}')
}

func matchString(re *regexp.Regexp, rec string) string {
	m := re.FindStringSubmatch(rec)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return unescape(group)
		}
	}
	return ""
}

func matchPopular(rec string) bool {
	m := popularField.FindStringSubmatch(rec)
	return m != nil && m[1] == "true"
}

func matchFeatures(rec string) []string {
	m := featuresField.FindStringSubmatch(rec)
	if m == nil {
		return nil
	}
	var features []string
	for _, q := range quotedString.FindAllStringSubmatch(m[1], -1) {
		for _, group := range q[1:] {
			if group != "" {
				features = append(features, unescape(group))
				break
			}
		}
	}
	return features
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
