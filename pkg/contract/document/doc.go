// Package document defines the value tree produced by contract loading.
//
// A resolved contract is a tree of Value nodes: null, booleans, numbers,
// strings, sequences, and mappings. Mappings preserve the key order of the
// source document, which plain Go maps cannot, so they are represented by
// the Mapping type rather than map[string]Value.
//
// Values are plain data with no behavior beyond structural equality; all
// interpretation of contract fields happens in consuming packages.
package document
