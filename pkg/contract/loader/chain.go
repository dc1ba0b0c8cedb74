package loader

// inclusionChain is the stack of canonical file paths currently being
// resolved. It belongs to a single Load call and grows and shrinks with the
// recursion: a path is pushed immediately before its file is resolved and
// popped when that resolution returns, success or failure.
type inclusionChain struct {
	paths []string
}

// enter pushes path onto the chain and returns a release function that pops
// it. If the path is already on the chain, enter fails with a
// CircularIncludeError carrying the chain at the time of detection.
//
// The release function must be called exactly once, typically via defer, so
// the chain never leaks entries across sibling includes or error returns.
func (c *inclusionChain) enter(path string) (func(), error) {
	for _, p := range c.paths {
		if p == path {
			chain := make([]string, len(c.paths), len(c.paths)+1)
			copy(chain, c.paths)
			return nil, &CircularIncludeError{
				Path:  path,
				Chain: append(chain, path),
			}
		}
	}

	c.paths = append(c.paths, path)
	return func() {
		c.paths = c.paths[:len(c.paths)-1]
	}, nil
}

// depth returns the number of paths currently on the chain.
func (c *inclusionChain) depth() int {
	return len(c.paths)
}
