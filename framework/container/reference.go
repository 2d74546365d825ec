package container

// ── Invalid-reference behavior ────────────────────────────────────────────────

// InvalidBehavior controls what happens at construction time when a Reference
// points at a service id that does not exist.
type InvalidBehavior int

const (
	// ThrowOnInvalid fails the build of the owning service.
	// Symfony: ContainerInterface::EXCEPTION_ON_INVALID_REFERENCE
	ThrowOnInvalid InvalidBehavior = iota

	// NilOnInvalid substitutes a nil argument for the missing target.
	// Symfony: ContainerInterface::NULL_ON_INVALID_REFERENCE
	NilOnInvalid

	// IgnoreOnInvalid drops the argument entirely.
	// Symfony: ContainerInterface::IGNORE_ON_INVALID_REFERENCE
	IgnoreOnInvalid
)

func (b InvalidBehavior) String() string {
	switch b {
	case ThrowOnInvalid:
		return "throw"
	case NilOnInvalid:
		return "nil"
	case IgnoreOnInvalid:
		return "ignore"
	}
	return "unknown"
}

// ── Reference ─────────────────────────────────────────────────────────────────

// Reference is a deferred pointer to another service id, used as a Definition
// argument and resolved when the owning service is built — mirrors Symfony's
// Symfony\Component\DependencyInjection\Reference.
//
//	// Symfony: new Reference('mailer')
//	def.AddArgument(container.NewReference("mailer"))
//
// A Reference never owns its target; it is a name, nothing more.
type Reference struct {
	id       string
	behavior InvalidBehavior
}

// NewReference creates a Reference that fails the build if the target is missing.
func NewReference(id string) *Reference {
	return &Reference{id: id, behavior: ThrowOnInvalid}
}

// NewReferenceWithBehavior creates a Reference with an explicit missing-target policy.
//
//	// Symfony: new Reference('mailer', ContainerInterface::NULL_ON_INVALID_REFERENCE)
//	container.NewReferenceWithBehavior("mailer", container.NilOnInvalid)
func NewReferenceWithBehavior(id string, behavior InvalidBehavior) *Reference {
	return &Reference{id: id, behavior: behavior}
}

// ID returns the target service id.
func (r *Reference) ID() string { return r.id }

// InvalidBehavior returns the missing-target policy.
func (r *Reference) InvalidBehavior() InvalidBehavior { return r.behavior }

func (r *Reference) String() string { return "@" + r.id }
