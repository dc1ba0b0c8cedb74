// Saturn is a contract-driven routing runtime built on recursively
// composable YAML contract files.
//
// Contracts reference each other through !include directives; saturn
// resolves them into a single document with cycle detection, depth and
// size budgets, and path sandboxing, then validates and serves the result.
//
// Usage:
//
//	# Validate contract files
//	saturn validate --file contracts/main.yaml
//
//	# Validate a directory and print JSON results
//	saturn validate --dir contracts/ --format json
//
//	# Load contracts and reload on change
//	saturn watch --config saturn.yaml
//
//	# Show version information
//	saturn version
package main

func main() {
	Execute()
}
