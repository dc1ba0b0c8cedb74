// Package validator checks the structure of resolved contract mappings.
//
// Validation runs after loading: the loader guarantees a fully-substituted
// mapping, and the validator checks the contract-level shape (version, name,
// routing section). All issues found in one pass are reported together.
package validator
