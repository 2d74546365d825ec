package container

// ── ResolveReferencesPass ─────────────────────────────────────────────────────

// ResolveReferencesPass validates that every throw-policy Reference held by a
// non-abstract definition — in its arguments, its method calls and its
// factory — points at a real definition or a resolvable alias. Nil- and
// ignore-policy references are left alone; their fallback happens at build
// time. The pass mutates nothing.
type ResolveReferencesPass struct{}

// NewResolveReferencesPass creates the pass. It is part of the standard
// pipeline, scheduled before the removing stage.
func NewResolveReferencesPass() *ResolveReferencesPass {
	return &ResolveReferencesPass{}
}

func (p *ResolveReferencesPass) Process(b *ContainerBuilder) error {
	for _, id := range b.ServiceIDs() {
		def, err := b.GetDefinition(id)
		if err != nil {
			return err
		}
		if def.IsAbstract() {
			continue
		}

		if err := p.walk(b, id, def.Arguments()); err != nil {
			return err
		}
		for _, call := range def.MethodCalls() {
			if err := p.walk(b, id, call.Args); err != nil {
				return err
			}
		}
		if f := def.Factory(); f != nil && f.Service != nil {
			if err := p.check(b, id, f.Service); err != nil {
				return err
			}
		}
	}
	return nil
}

// walk recurses into nested argument containers looking for references.
func (p *ResolveReferencesPass) walk(b *ContainerBuilder, owner string, args []any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Reference:
			if err := p.check(b, owner, v); err != nil {
				return err
			}
		case []any:
			if err := p.walk(b, owner, v); err != nil {
				return err
			}
		case map[string]any:
			for _, el := range v {
				if err := p.walk(b, owner, []any{el}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *ResolveReferencesPass) check(b *ContainerBuilder, owner string, ref *Reference) error {
	if ref.InvalidBehavior() != ThrowOnInvalid {
		return nil
	}

	// follow the alias chain to a definition
	id := ref.ID()
	seen := make(map[string]bool)
	for {
		if b.HasDefinition(id) {
			return nil
		}
		target, ok := b.aliases[id]
		if !ok || seen[id] {
			return &MissingReferenceError{ServiceID: owner, TargetID: ref.ID()}
		}
		seen[id] = true
		id = target
	}
}
