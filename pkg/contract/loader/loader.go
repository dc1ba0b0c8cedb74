package loader

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"covenant-hq/saturn/pkg/contract/document"
)

// includeTag is the YAML tag that marks an include directive.
const includeTag = "!include"

// Loader loads contract documents, resolving !include directives into a
// single value tree. Include paths are interpreted relative to the directory
// of the file containing the directive and are confined by the sandbox
// policy: no absolute paths, no parent-directory traversal.
//
// A Loader is stateless between calls; each Load owns its own budget copy
// and inclusion chain, so a single Loader is safe for concurrent use.
type Loader struct {
	budget Budget
}

// NewLoader creates a new loader with default resource limits.
func NewLoader() *Loader {
	return &Loader{
		budget: DefaultBudget(),
	}
}

// WithMaxDepth sets the maximum number of include hops.
func (l *Loader) WithMaxDepth(depth int) *Loader {
	l.budget.MaxDepth = depth
	return l
}

// WithMaxFileSize sets the maximum contract file size in bytes.
func (l *Loader) WithMaxFileSize(size int64) *Loader {
	l.budget.MaxFileSize = size
	return l
}

// Load loads the contract file at path and returns the fully resolved
// mapping. An empty root file yields an empty mapping; a root that parses
// to a scalar or sequence fails with a ValidationError. Any failure in the
// recursion (missing file, unsafe path, cycle, depth or size limit) aborts
// the whole load and propagates to the caller unchanged.
func (l *Loader) Load(path string) (*document.Mapping, error) {
	canon := canonicalPath(path)

	text, err := readDocument(canon, l.budget)
	if err != nil {
		return nil, err
	}

	chain := &inclusionChain{}
	root, err := l.parseText(text, canon, chain, 0)
	if err != nil {
		return nil, err
	}

	switch v := root.(type) {
	case nil:
		return document.NewMapping(), nil
	case *document.Mapping:
		return v, nil
	default:
		return nil, &ValidationError{Message: "contract root must be a mapping"}
	}
}

// Load loads the contract file at path with default resource limits.
func Load(path string) (*document.Mapping, error) {
	return NewLoader().Load(path)
}

// parseText parses one file's text and resolves every include directive it
// contains. sourcePath is the canonical path of the file the text came
// from; include paths resolve relative to its directory. depth counts
// include hops from the root document.
func (l *Loader) parseText(text, sourcePath string, chain *inclusionChain, depth int) (document.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return nil, &LoadError{Path: sourcePath, Message: "invalid YAML syntax", Cause: err}
	}

	// An empty document produces a zero node.
	if node.Kind == 0 {
		return nil, nil
	}

	return l.resolveNode(&node, sourcePath, chain, depth)
}

// resolveNode converts a YAML node into a document value, substituting
// resolved file contents for include directives wherever they occur.
func (l *Loader) resolveNode(node *yaml.Node, sourcePath string, chain *inclusionChain, depth int) (document.Value, error) {
	if node.Tag == includeTag {
		if node.Kind != yaml.ScalarNode {
			return nil, &LoadError{
				Path:    sourcePath,
				Message: fmt.Sprintf("!include directive at line %d must be a path string", node.Line),
			}
		}
		return l.resolveInclude(node.Value, sourcePath, chain, depth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return l.resolveNode(node.Content[0], sourcePath, chain, depth)

	case yaml.AliasNode:
		return l.resolveNode(node.Alias, sourcePath, chain, depth)

	case yaml.MappingNode:
		m := document.NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]

			var key string
			if err := keyNode.Decode(&key); err != nil {
				return nil, &LoadError{
					Path:    sourcePath,
					Message: fmt.Sprintf("unsupported mapping key at line %d", keyNode.Line),
					Cause:   err,
				}
			}

			value, err := l.resolveNode(valueNode, sourcePath, chain, depth)
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil

	case yaml.SequenceNode:
		seq := make([]document.Value, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := l.resolveNode(child, sourcePath, chain, depth)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil

	case yaml.ScalarNode:
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, &LoadError{
				Path:    sourcePath,
				Message: fmt.Sprintf("invalid scalar at line %d", node.Line),
				Cause:   err,
			}
		}
		return value, nil
	}

	return nil, &LoadError{
		Path:    sourcePath,
		Message: fmt.Sprintf("unsupported YAML node kind %d at line %d", node.Kind, node.Line),
	}
}

// resolveInclude resolves one !include directive: validate the raw path,
// resolve it against the including file's directory, canonicalize, enter
// the inclusion chain, check the depth budget, then read and parse the
// target file. The included value is substituted verbatim; an empty
// included file yields null, not an empty mapping.
func (l *Loader) resolveInclude(rawPath, sourcePath string, chain *inclusionChain, depth int) (document.Value, error) {
	rel, err := validateIncludePath(rawPath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(filepath.Dir(sourcePath), filepath.FromSlash(rel))
	canon := canonicalPath(fullPath)

	release, err := chain.enter(canon)
	if err != nil {
		return nil, err
	}
	defer release()

	// Cheap check before touching the filesystem.
	if depth+1 > l.budget.MaxDepth {
		return nil, &DepthError{Depth: depth + 1, MaxDepth: l.budget.MaxDepth}
	}

	text, err := readDocument(canon, l.budget)
	if err != nil {
		return nil, err
	}

	return l.parseText(text, canon, chain, depth+1)
}
