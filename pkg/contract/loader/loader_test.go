package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"covenant-hq/saturn/pkg/contract/document"
)

// writeFile writes a contract fixture under dir, creating parent
// directories as needed, and returns its full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoad_SimpleInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "routing: !include sub/routing.yaml\n")
	writeFile(t, dir, "sub/routing.yaml", "default_handler: main\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	routing, ok := contract.Get("routing")
	if !ok {
		t.Fatal("resolved contract missing 'routing' key")
	}
	sub, ok := routing.(*document.Mapping)
	if !ok {
		t.Fatalf("routing = %T, want *document.Mapping", routing)
	}
	handler, ok := sub.Get("default_handler")
	if !ok || handler != "main" {
		t.Errorf("default_handler = %v, %v; want \"main\", true", handler, ok)
	}
}

func TestLoad_SequenceInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "items: !include sub/items.yaml\n")
	writeFile(t, dir, "sub/items.yaml", "- item1\n- item2\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	items, ok := contract.Get("items")
	if !ok {
		t.Fatal("resolved contract missing 'items' key")
	}
	seq, ok := items.([]document.Value)
	if !ok {
		t.Fatalf("items = %T, want []document.Value", items)
	}
	if len(seq) != 2 || seq[0] != "item1" || seq[1] != "item2" {
		t.Errorf("items = %v, want [item1 item2]", seq)
	}
}

func TestLoad_NestedIncludes(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", `name: nested
routing:
  handlers:
    - !include handlers/first.yaml
    - !include handlers/second.yaml
`)
	writeFile(t, dir, "handlers/first.yaml", "id: first\n")
	writeFile(t, dir, "handlers/second.yaml", "id: second\ntimeout: 30\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	routing, _ := contract.Get("routing")
	handlers, ok := routing.(*document.Mapping)
	if !ok {
		t.Fatalf("routing = %T, want *document.Mapping", routing)
	}
	list, _ := handlers.Get("handlers")
	seq, ok := list.([]document.Value)
	if !ok || len(seq) != 2 {
		t.Fatalf("handlers = %v, want sequence of 2", list)
	}

	second, ok := seq[1].(*document.Mapping)
	if !ok {
		t.Fatalf("handlers[1] = %T, want *document.Mapping", seq[1])
	}
	if timeout, _ := second.Get("timeout"); timeout != 30 {
		t.Errorf("handlers[1].timeout = %v, want 30", timeout)
	}
}

func TestLoad_RelativeToIncludingFile(t *testing.T) {
	// The include path resolves against the directory of the file that
	// contains the directive, not the root document's directory.
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "config: !include sub/config.yaml\n")
	writeFile(t, dir, "sub/config.yaml", "inner: !include deep/inner.yaml\n")
	writeFile(t, dir, "sub/deep/inner.yaml", "value: 42\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	config, _ := contract.Get("config")
	inner, _ := config.(*document.Mapping).Get("inner")
	value, _ := inner.(*document.Mapping).Get("value")
	if value != 42 {
		t.Errorf("config.inner.value = %v, want 42", value)
	}
}

func TestLoad_DiamondIsNotACycle(t *testing.T) {
	// Two siblings including the same grandchild is a DAG, not a cycle.
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", `left: !include left.yaml
right: !include right.yaml
`)
	writeFile(t, dir, "left.yaml", "shared: !include shared.yaml\n")
	writeFile(t, dir, "right.yaml", "shared: !include shared.yaml\n")
	writeFile(t, dir, "shared.yaml", "value: common\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed on diamond include graph: %v", err)
	}

	for _, side := range []string{"left", "right"} {
		v, _ := contract.Get(side)
		shared, _ := v.(*document.Mapping).Get("shared")
		value, _ := shared.(*document.Mapping).Get("value")
		if value != "common" {
			t.Errorf("%s.shared.value = %v, want %q", side, value, "common")
		}
	}
}

func TestLoad_CircularInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "a.yaml", "b: !include b.yaml\n")
	writeFile(t, dir, "b.yaml", "a: !include a.yaml\n")

	_, err := Load(main)
	if err == nil {
		t.Fatal("Load() succeeded on circular include graph")
	}

	var circErr *CircularIncludeError
	if !errors.As(err, &circErr) {
		t.Fatalf("error = %T, want *CircularIncludeError", err)
	}
	if !strings.Contains(err.Error(), "circular") {
		t.Errorf("error message %q does not mention circular", err.Error())
	}
	if len(circErr.Chain) == 0 {
		t.Error("CircularIncludeError carries no chain")
	}
}

func TestLoad_SelfInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "self.yaml", "again: !include self.yaml\n")

	_, err := Load(main)
	var circErr *CircularIncludeError
	if !errors.As(err, &circErr) {
		t.Fatalf("error = %v (%T), want *CircularIncludeError", err, err)
	}
}

func TestLoad_SecurityViolations(t *testing.T) {
	tests := []struct {
		name    string
		include string
		reason  SecurityReason
	}{
		{"parent traversal", "../outside.yaml", ReasonPathTraversal},
		{"nested traversal", "sub/../../outside.yaml", ReasonPathTraversal},
		{"absolute path", "/etc/passwd", ReasonAbsolutePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			// The rejection happens before any filesystem access, so it
			// must not matter whether the target exists.
			writeFile(t, dir, "outside.yaml", "secret: true\n")
			main := writeFile(t, filepath.Join(dir, "contracts"), "main.yaml",
				fmt.Sprintf("bad: !include %s\n", tt.include))

			_, err := Load(main)
			var secErr *SecurityError
			if !errors.As(err, &secErr) {
				t.Fatalf("error = %v (%T), want *SecurityError", err, err)
			}
			if secErr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", secErr.Reason, tt.reason)
			}
			if secErr.IncludePath != tt.include {
				t.Errorf("IncludePath = %q, want %q", secErr.IncludePath, tt.include)
			}
		})
	}
}

func TestLoad_MissingInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "missing: !include sub/missing.yaml\n")

	_, err := Load(main)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v (%T), want *LoadError", err, err)
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("error message %q does not mention file not found", err.Error())
	}
}

func TestLoad_RootNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v (%T), want *LoadError", err, err)
	}
}

func TestLoad_IncludeTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "sub: !include sub\n")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	_, err := Load(main)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v (%T), want *LoadError", err, err)
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", "bad: !include bad.yaml\n")
	writeFile(t, dir, "bad.yaml", "key: \xff\xfe\n")

	_, err := Load(main)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v (%T), want *LoadError", err, err)
	}
}

// writeChain writes a linear include chain of n files under dir and returns
// the path of the first one. The final file is a plain mapping, so the
// chain contains n-1 include hops.
func writeChain(t *testing.T, dir string, n int) string {
	t.Helper()
	for i := 0; i < n-1; i++ {
		writeFile(t, dir, fmt.Sprintf("f%d.yaml", i),
			fmt.Sprintf("next: !include f%d.yaml\n", i+1))
	}
	writeFile(t, dir, fmt.Sprintf("f%d.yaml", n-1), "leaf: true\n")
	return filepath.Join(dir, "f0.yaml")
}

func TestLoad_DepthBoundary(t *testing.T) {
	t.Run("exactly max depth succeeds", func(t *testing.T) {
		root := writeChain(t, t.TempDir(), 4) // 3 hops
		contract, err := NewLoader().WithMaxDepth(3).Load(root)
		if err != nil {
			t.Fatalf("Load() failed at exactly max depth: %v", err)
		}
		if contract.Len() != 1 {
			t.Errorf("Len() = %d, want 1", contract.Len())
		}
	})

	t.Run("one hop over fails", func(t *testing.T) {
		root := writeChain(t, t.TempDir(), 5) // 4 hops
		_, err := NewLoader().WithMaxDepth(3).Load(root)
		var depthErr *DepthError
		if !errors.As(err, &depthErr) {
			t.Fatalf("error = %v (%T), want *DepthError", err, err)
		}
		if depthErr.MaxDepth != 3 {
			t.Errorf("MaxDepth = %d, want 3", depthErr.MaxDepth)
		}
		if !strings.Contains(err.Error(), "depth") {
			t.Errorf("error message %q does not mention depth", err.Error())
		}
	})

	t.Run("twelve-level chain exceeds default", func(t *testing.T) {
		root := writeChain(t, t.TempDir(), 12) // 11 hops, default max is 10
		_, err := Load(root)
		var depthErr *DepthError
		if !errors.As(err, &depthErr) {
			t.Fatalf("error = %v (%T), want *DepthError", err, err)
		}
	})
}

func TestLoad_SizeBoundary(t *testing.T) {
	t.Run("root at exactly max size succeeds", func(t *testing.T) {
		content := "key: value\n"
		main := writeFile(t, t.TempDir(), "main.yaml", content)
		if _, err := NewLoader().WithMaxFileSize(int64(len(content))).Load(main); err != nil {
			t.Fatalf("Load() failed at exactly max size: %v", err)
		}
	})

	t.Run("root one byte over fails", func(t *testing.T) {
		content := "key: value\n"
		main := writeFile(t, t.TempDir(), "main.yaml", content)
		_, err := NewLoader().WithMaxFileSize(int64(len(content)) - 1).Load(main)
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("error = %v (%T), want *SizeError", err, err)
		}
		if !strings.Contains(err.Error(), "large") {
			t.Errorf("error message %q does not mention large", err.Error())
		}
	})

	t.Run("included file over budget fails", func(t *testing.T) {
		dir := t.TempDir()
		main := writeFile(t, dir, "m.yaml", "c: !include c.yaml\n")
		child := "description: a child document that is comfortably oversized\n"
		writeFile(t, dir, "c.yaml", child)

		_, err := NewLoader().WithMaxFileSize(int64(len(child)) - 1).Load(main)
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("error = %v (%T), want *SizeError", err, err)
		}
		if sizeErr.Size != int64(len(child)) {
			t.Errorf("Size = %d, want %d", sizeErr.Size, len(child))
		}
	})
}

func TestLoad_RootNormalization(t *testing.T) {
	t.Run("empty root yields empty mapping", func(t *testing.T) {
		main := writeFile(t, t.TempDir(), "empty.yaml", "")
		contract, err := Load(main)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if contract.Len() != 0 {
			t.Errorf("Len() = %d, want 0", contract.Len())
		}
	})

	t.Run("sequence root fails", func(t *testing.T) {
		main := writeFile(t, t.TempDir(), "seq.yaml", "- one\n- two\n")
		_, err := Load(main)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("error = %v (%T), want *ValidationError", err, err)
		}
		if !strings.Contains(err.Error(), "must be a mapping") {
			t.Errorf("error message %q does not mention mapping requirement", err.Error())
		}
	})

	t.Run("scalar root fails", func(t *testing.T) {
		main := writeFile(t, t.TempDir(), "scalar.yaml", "just a string\n")
		_, err := Load(main)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("error = %v (%T), want *ValidationError", err, err)
		}
	})

	t.Run("included empty file yields null not empty mapping", func(t *testing.T) {
		dir := t.TempDir()
		main := writeFile(t, dir, "main.yaml", "empty: !include empty.yaml\n")
		writeFile(t, dir, "empty.yaml", "")

		contract, err := Load(main)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		v, ok := contract.Get("empty")
		if !ok {
			t.Fatal("resolved contract missing 'empty' key")
		}
		if v != nil {
			t.Errorf("empty include = %v (%T), want nil", v, v)
		}
	})
}

func TestLoad_Idempotent(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.yaml", `name: idempotent
routing: !include routing.yaml
tags:
  - alpha
  - beta
`)
	writeFile(t, dir, "routing.yaml", "default_handler: main\nretries: 3\n")

	first, err := Load(main)
	if err != nil {
		t.Fatalf("first Load() failed: %v", err)
	}
	second, err := Load(main)
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}

	if !document.Equal(first, second) {
		t.Error("two loads of the same files are not structurally equal")
	}
}

func TestLoad_ScalarTypes(t *testing.T) {
	main := writeFile(t, t.TempDir(), "types.yaml", `string: hello
integer: 7
float: 2.5
boolean: true
nothing: null
`)

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		key  string
		want document.Value
	}{
		{"string", "hello"},
		{"integer", 7},
		{"float", 2.5},
		{"boolean", true},
		{"nothing", nil},
	}
	for _, tt := range tests {
		if got, _ := contract.Get(tt.key); got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.key, got, got, tt.want)
		}
	}
}

func TestLoad_KeyOrderPreserved(t *testing.T) {
	main := writeFile(t, t.TempDir(), "ordered.yaml", "zebra: 1\napple: 2\nmango: 3\n")

	contract, err := Load(main)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	keys := contract.Keys()
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	main := writeFile(t, t.TempDir(), "broken.yaml", "key: [unclosed\n")
	_, err := Load(main)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v (%T), want *LoadError", err, err)
	}
}
