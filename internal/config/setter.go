package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SetValue sets key to value in the mapping held by root, creating the
// mapping if root is empty. Existing keys keep their position and comments.
func SetValue(root *yaml.Node, key string, value interface{}) error {
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.MappingNode})
	}
	var mapNode *yaml.Node
	switch {
	case root.Kind == yaml.DocumentNode && len(root.Content) > 0:
		mapNode = root.Content[0]
	case root.Kind == yaml.MappingNode:
		mapNode = root
	default:
		return fmt.Errorf("root node must be document or mapping, got %v", root.Kind)
	}
	if mapNode.Kind != yaml.MappingNode {
		return fmt.Errorf("top level must be a mapping, got %v", mapNode.Kind)
	}

	if idx := findKeyIndex(mapNode, key); idx != -1 {
		return encodeValue(mapNode.Content[idx+1], value)
	}

	valueNode := &yaml.Node{}
	if err := encodeValue(valueNode, value); err != nil {
		return err
	}
	mapNode.Content = append(mapNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, valueNode)
	return nil
}

// GetValue returns the node stored under key, or nil
func GetValue(root *yaml.Node, key string) *yaml.Node {
	if root == nil {
		return nil
	}
	mapNode := root
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		mapNode = root.Content[0]
	}
	if mapNode.Kind != yaml.MappingNode {
		return nil
	}
	idx := findKeyIndex(mapNode, key)
	if idx == -1 {
		return nil
	}
	return mapNode.Content[idx+1]
}

// findKeyIndex finds the index of a key in a mapping node's content.
// Returns -1 if the key is not found.
func findKeyIndex(node *yaml.Node, key string) int {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// encodeValue overwrites node with the YAML form of value
func encodeValue(node *yaml.Node, value interface{}) error {
	node.Content = nil
	node.Style = 0
	switch v := value.(type) {
	case []string:
		node.Kind = yaml.SequenceNode
		node.Tag = "!!seq"
		node.Value = ""
		for _, item := range v {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return nil
	case bool:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!bool"
		node.Value = strconv.FormatBool(v)
	case int:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!int"
		node.Value = strconv.Itoa(v)
	case float64:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!float"
		node.Value = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!str"
		node.Value = v
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
	return nil
}

// SetConfigValue sets a configuration value in a YAML file.
// Validates the key and value against the schema before writing.
// Creates the file if it doesn't exist.
func SetConfigValue(filePath, key, value string) error {
	if isJSON(filePath) {
		return fmt.Errorf("only YAML config files can be edited: %s", filePath)
	}
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return fmt.Errorf("validating value: %w", err)
	}
	root, err := loadOrCreateYAML(filePath)
	if err != nil {
		return err
	}
	if err := SetValue(root, key, parsed.Parsed); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	content, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := writeAtomically(filePath, content); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// loadOrCreateYAML loads a YAML file or creates an empty document node.
func loadOrCreateYAML(filePath string) (*yaml.Node, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &yaml.Node{
				Kind:    yaml.DocumentNode,
				Content: []*yaml.Node{{Kind: yaml.MappingNode}},
			}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := ValidateYAMLSyntaxFromBytes(data, filePath); err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	return &root, nil
}

// writeAtomically writes content through a temporary file and rename.
// Creates parent directories if they don't exist.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = ""
	return nil
}
