package container

import (
	"fmt"
	"strings"
)

// Every failure mode gets its own error type so callers can branch with
// errors.As instead of parsing messages.

// ── ServiceNotFoundError ──────────────────────────────────────────────────────

// ServiceNotFoundError is returned by Get and GetDefinition for an id that was
// never registered, and for a synthetic service whose instance was not injected
// before first use.
type ServiceNotFoundError struct {
	ID        string
	Synthetic bool
}

func (e *ServiceNotFoundError) Error() string {
	if e.Synthetic {
		return fmt.Sprintf("container: synthetic service [%s] was not injected before first use", e.ID)
	}
	return fmt.Sprintf("container: no service registered for [%s]", e.ID)
}

// ── ParameterNotFoundError ────────────────────────────────────────────────────

// ParameterNotFoundError is returned for an unknown parameter name, including
// names reached through %placeholder% substitution.
type ParameterNotFoundError struct {
	Name string
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("container: parameter [%s] is not defined", e.Name)
}

// ── CircularDependencyError ───────────────────────────────────────────────────

// CircularDependencyError reports a cycle in service construction, alias
// resolution or parameter substitution. Path holds the full cycle, first id
// repeated at the end (a -> b -> a).
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("container: circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// ── FrozenContainerError ──────────────────────────────────────────────────────

// FrozenContainerError reports a mutating call on a ContainerBuilder after
// Compile has run.
type FrozenContainerError struct {
	Op string
}

func (e *FrozenContainerError) Error() string {
	return fmt.Sprintf("container: cannot call %s on a frozen container", e.Op)
}

// ── AutowireError ─────────────────────────────────────────────────────────────

// AutowireError reports a constructor parameter that the AutowirePass could
// not resolve — a configuration defect surfaced at Compile time, not at Get
// time.
type AutowireError struct {
	ID     string
	Reason string
}

func (e *AutowireError) Error() string {
	return fmt.Sprintf("container: cannot autowire service [%s]: %s", e.ID, e.Reason)
}

// ── AbstractServiceError ──────────────────────────────────────────────────────

// AbstractServiceError reports a Get targeting a Definition flagged abstract.
// Abstract definitions are templates for child definitions, never instances.
type AbstractServiceError struct {
	ID string
}

func (e *AbstractServiceError) Error() string {
	return fmt.Sprintf("container: service [%s] is abstract and cannot be instantiated", e.ID)
}

// ── MissingReferenceError ─────────────────────────────────────────────────────

// MissingReferenceError is raised by the ResolveReferencesPass when a
// throw-policy Reference points at an id that is neither a definition nor a
// resolvable alias.
type MissingReferenceError struct {
	ServiceID string
	TargetID  string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("container: service [%s] references unknown service [%s]", e.ServiceID, e.TargetID)
}
