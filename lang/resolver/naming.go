package resolver

func (r *resolver) nameBlocks() {
	// find the root block, which should already be r.root at the end of a
	// chunk resolve, but just to make sure.
	b := r.root
	for b != nil && b.parent != nil {
		b = b.parent
	}
	nameBlock(b)
}

func nameBlock(b *block) {
	if b == nil {
		return
	}
	if b.parent == nil {
		b.name = "_"
	}
	b.locals.Each(func(sym *Symbol) bool {
		if sym.BlockName == "" {
			sym.BlockName = b.name
		}
		return true
	})

	for i, cb := range b.children {
		cb.name = b.name + letterFor(i)
		nameBlock(cb)
	}
}

func letterFor(i int) string {
	if i < 26 {
		return string(rune(i) + 'a')
	}
	if i < 52 {
		return string(rune(i-26) + 'A')
	}
	// too many child blocks, give up naming it
	return "?"
}
