package arena

// Container is the arena-backed storage shared by one parse (and the
// resolve pass over its result): every AST node, scope and symbol
// allocated while building it comes from one of its three pools, so they
// all die together in a single Release call instead of being freed node
// by node.
type Container struct {
	// Nodes backs every AST node (statements, expressions, blocks).
	Nodes *Pool
	// Scopes backs the resolver's block and funcState bookkeeping.
	Scopes *Pool
	// Symbols backs the resolver's Symbol and Upvalue values.
	Symbols *Pool

	// Root is the outermost node of a single parsed chunk, or nil when the
	// container holds more than one independently-rooted chunk (as
	// ParseFiles produces for a multi-file parse).
	Root any

	released bool
}

// NewContainer returns a container with its three pools ready to allocate
// from.
func NewContainer() *Container {
	return &Container{Nodes: NewPool(), Scopes: NewPool(), Symbols: NewPool()}
}

// Release drops all three pools at once. Idempotent.
func (c *Container) Release() {
	if c.released {
		return
	}
	c.Nodes.Release()
	c.Scopes.Release()
	c.Symbols.Release()
	c.released = true
}

// Released reports whether Release has already been called.
func (c *Container) Released() bool { return c.released }
