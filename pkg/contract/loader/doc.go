// Package loader loads contract documents and resolves !include directives.
//
// A contract file is YAML in which any value may be the tagged scalar
// `!include <relative-path>`. Loading replaces each directive with the
// parsed content of the target file, recursively, producing a single
// fully-substituted value tree:
//
//	routing: !include subcontracts/routing.yaml
//	limits:
//	  defaults: !include limits/defaults.yaml
//
// Include paths are always relative to the directory of the file that
// contains the directive. Four safety bounds hold for every load:
//
//   - no absolute include paths and no ".." components (SecurityError),
//     checked textually before any filesystem access
//   - no cycles in the include graph, including self-reference
//     (CircularIncludeError)
//   - at most MaxDepth include hops from the root (DepthError)
//   - at most MaxFileSize bytes per file, verified against file metadata
//     before reading (SizeError)
//
// The root document must resolve to a mapping; an empty root yields an
// empty mapping. Included documents are substituted verbatim and may be
// null, scalars, sequences, or mappings.
//
// Usage:
//
//	contract, err := loader.NewLoader().
//	    WithMaxDepth(5).
//	    Load("contracts/main.yaml")
//
// Loading is synchronous and stateless across calls: nothing is cached and
// every call re-reads the filesystem, so a Loader may be shared freely
// between goroutines.
package loader
