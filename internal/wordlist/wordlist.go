// Package wordlist loads banned words from files.
//
// Supported formats, chosen by extension:
//
//	.txt          one word or phrase per line, # starts a comment
//	.json         ["a", "b"] or {"banned_words": ["a", "b"]}
//	.yaml, .yml   a list or a mapping with banned_words
//	.toml         banned_words = ["a", "b"]
package wordlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a word list file format
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported word list format")

// document is the mapping form shared by the structured formats
type document struct {
	BannedWords []string `json:"banned_words" yaml:"banned_words" toml:"banned_words"`
}

// FormatFor returns the format implied by the extension of path
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".lst", "":
		return FormatText, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the word list at path
func Load(path string) ([]string, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	words, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Parse decodes a word list. Words are trimmed, empty entries dropped and
// duplicates removed keeping the first occurrence.
func Parse(data []byte, format Format) ([]string, error) {
	var words []string
	var err error

	switch format {
	case FormatText:
		words, err = parseText(data)
	case FormatJSON:
		words, err = parseJSON(data)
	case FormatYAML:
		words, err = parseYAML(data)
	case FormatTOML:
		var doc document
		if _, err = toml.Decode(string(data), &doc); err == nil {
			words = doc.BannedWords
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return clean(words), nil
}

func parseText(data []byte) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func parseJSON(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var words []string
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, fmt.Errorf("invalid JSON word list: %w", err)
		}
		return words, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON word list: %w", err)
	}
	return doc.BannedWords, nil
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML word list: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var words []string
		if err := root.Decode(&words); err != nil {
			return nil, fmt.Errorf("invalid YAML word list: %w", err)
		}
		return words, nil
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML word list: %w", err)
		}
		return doc.BannedWords, nil
	default:
		return nil, fmt.Errorf("invalid YAML word list: expected a list or a mapping")
	}
}

func clean(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
