package config

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// AddManifest appends path to the manifests list in the config file.
// Comments and formatting elsewhere in the file are preserved. Adding a
// path that is already listed is a no-op.
func AddManifest(configPath, path string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: root is not a mapping")
	}

	list, err := manifestsNode(doc.Content[0])
	if err != nil {
		return err
	}
	if slices.ContainsFunc(list.Content, func(n *yaml.Node) bool { return n.Value == path }) {
		return nil
	}
	list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: path})
	// Flow style is what DefaultConfigTemplate writes for an empty list.
	list.Style = 0

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// manifestsNode finds or creates the "manifests" sequence under root.
func manifestsNode(root *yaml.Node) (*yaml.Node, error) {
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value != "manifests" {
			continue
		}
		val := root.Content[i+1]
		switch {
		case val.Kind == yaml.SequenceNode:
			return val, nil
		case val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null":
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			root.Content[i+1] = seq
			return seq, nil
		default:
			return nil, fmt.Errorf("parsing config: manifests must be a list")
		}
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "manifests"},
		seq,
	)
	return seq, nil
}
