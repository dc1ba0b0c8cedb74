package validator

import (
	"fmt"
	"regexp"
	"strings"

	"covenant-hq/saturn/pkg/contract/document"
)

var (
	// kebabCasePattern validates contract names (e.g., "payment-routing").
	kebabCasePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	// supportedVersions defines which contract versions this validator accepts.
	supportedVersions = map[string]bool{
		"1.0": true,
	}
)

// Issue describes a single validation failure in a resolved contract.
type Issue struct {
	// Field is the path to the offending field (e.g., "routing.default_handler")
	Field string

	// Message describes the failure
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	if i.Field != "" {
		return fmt.Sprintf("invalid contract: %s: %s", i.Field, i.Message)
	}
	return fmt.Sprintf("invalid contract: %s", i.Message)
}

// IssueList collects all validation failures found in one pass.
type IssueList struct {
	Issues []*Issue
}

// Error implements the error interface.
func (l *IssueList) Error() string {
	if len(l.Issues) == 1 {
		return l.Issues[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("contract has %d validation issues:\n", len(l.Issues)))
	for i, issue := range l.Issues {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, issue.Error()))
	}
	return sb.String()
}

// add records a validation failure.
func (l *IssueList) add(field, message string) {
	l.Issues = append(l.Issues, &Issue{Field: field, Message: message})
}

// toError returns nil when no issues were recorded.
func (l *IssueList) toError() error {
	if len(l.Issues) == 0 {
		return nil
	}
	return l
}

// Validator checks the structure of a resolved contract mapping.
// It does not interpret field semantics beyond the structural rules below;
// deeper consistency checks belong to the consuming subsystem.
type Validator struct{}

// NewValidator creates a new contract validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a resolved contract and returns all issues found.
// Rules:
//
//   - contract_version is required, must be a string, and must be supported
//   - name is required and must be kebab-case
//   - routing, when present, must be a mapping
//   - routing.default_handler, when both it and routing.handlers are
//     present, must name an entry of routing.handlers
func (v *Validator) Validate(contract *document.Mapping) error {
	issues := &IssueList{}

	v.validateVersion(contract, issues)
	v.validateName(contract, issues)
	v.validateRouting(contract, issues)

	return issues.toError()
}

func (v *Validator) validateVersion(contract *document.Mapping, issues *IssueList) {
	raw, ok := contract.Get("contract_version")
	if !ok {
		issues.add("contract_version", "required field is missing")
		return
	}

	version, ok := raw.(string)
	if !ok {
		issues.add("contract_version", fmt.Sprintf("must be a string, got %T", raw))
		return
	}

	if !supportedVersions[version] {
		issues.add("contract_version", fmt.Sprintf("unsupported version %q", version))
	}
}

func (v *Validator) validateName(contract *document.Mapping, issues *IssueList) {
	raw, ok := contract.Get("name")
	if !ok {
		issues.add("name", "required field is missing")
		return
	}

	name, ok := raw.(string)
	if !ok {
		issues.add("name", fmt.Sprintf("must be a string, got %T", raw))
		return
	}

	if !kebabCasePattern.MatchString(name) {
		issues.add("name", fmt.Sprintf("%q is not kebab-case", name))
	}
}

func (v *Validator) validateRouting(contract *document.Mapping, issues *IssueList) {
	raw, ok := contract.Get("routing")
	if !ok {
		return
	}

	routing, ok := raw.(*document.Mapping)
	if !ok {
		issues.add("routing", fmt.Sprintf("must be a mapping, got %T", raw))
		return
	}

	rawDefault, hasDefault := routing.Get("default_handler")
	rawHandlers, hasHandlers := routing.Get("handlers")
	if !hasDefault || !hasHandlers {
		return
	}

	defaultHandler, ok := rawDefault.(string)
	if !ok {
		issues.add("routing.default_handler", fmt.Sprintf("must be a string, got %T", rawDefault))
		return
	}

	handlers, ok := rawHandlers.(*document.Mapping)
	if !ok {
		issues.add("routing.handlers", fmt.Sprintf("must be a mapping, got %T", rawHandlers))
		return
	}

	if !handlers.Has(defaultHandler) {
		issues.add("routing.default_handler",
			fmt.Sprintf("%q does not name an entry in routing.handlers", defaultHandler))
	}
}
