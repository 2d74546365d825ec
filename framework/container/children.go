package container

import "fmt"

// resolveChildDefinitionsPass merges every definition that names a parent with
// its (transitively resolved) template: class and factory default to the
// parent's, parent arguments fill unset positions, parent method calls and
// tags come first. Runs before autowiring so inherited arguments are visible
// to it.
type resolveChildDefinitionsPass struct{}

func (p *resolveChildDefinitionsPass) Process(b *ContainerBuilder) error {
	resolved := make(map[string]bool)
	for _, id := range b.ServiceIDs() {
		if err := p.resolve(b, id, resolved, nil); err != nil {
			return err
		}
	}
	return nil
}

func (p *resolveChildDefinitionsPass) resolve(b *ContainerBuilder, id string, resolved map[string]bool, chain []string) error {
	if resolved[id] {
		return nil
	}
	for _, seen := range chain {
		if seen == id {
			return &CircularDependencyError{Path: append(append([]string(nil), chain...), id)}
		}
	}

	def, err := b.GetDefinition(id)
	if err != nil {
		return err
	}
	parentID := def.Parent()
	if parentID == "" {
		resolved[id] = true
		return nil
	}

	if !b.HasDefinition(parentID) {
		return fmt.Errorf("container: service [%s] extends unknown parent [%s]", id, parentID)
	}
	// resolve the parent's own inheritance first
	if err := p.resolve(b, parentID, resolved, append(chain, id)); err != nil {
		return err
	}
	parent, err := b.GetDefinition(parentID)
	if err != nil {
		return err
	}

	merge(def, parent)
	resolved[id] = true
	return nil
}

// merge copies inheritable state from parent into child, child wins.
func merge(child, parent *Definition) {
	if child.class == "" {
		child.class = parent.class
	}
	if child.factory == nil {
		child.factory = parent.factory
	}

	// parent arguments fill unset child positions and extend past its end
	args := parent.Arguments()
	for i, arg := range child.args {
		if i < len(args) {
			if !isHole(arg) {
				args[i] = arg
			}
		} else {
			args = append(args, arg)
		}
	}
	child.args = args

	child.calls = append(parent.MethodCalls(), child.calls...)

	tags := parent.Tags()
	for name, attrs := range child.tags {
		tags[name] = append(tags[name], attrs...)
	}
	child.tags = tags

	child.parent = ""
}
