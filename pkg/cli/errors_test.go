package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("saturn.yaml", "missing contracts section")
	if !strings.Contains(err.Error(), "saturn.yaml") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "missing contracts section") {
		t.Errorf("expected message in output, got %q", err.Error())
	}

	bare := NewConfigError("", "no config file")
	if strings.Contains(bare.Error(), "in ") {
		t.Errorf("expected no path fragment, got %q", bare.Error())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("validation failed")
	err := NewCommandError("validate", cause)

	if !strings.Contains(err.Error(), "validate") {
		t.Errorf("expected command name in message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}
