package container

import "sort"

// ── Compiler passes ───────────────────────────────────────────────────────────

// CompilerPass is a validation or transformation step run once during
// Compile — mirrors Symfony's CompilerPassInterface. A pass that returns an
// error aborts compilation entirely.
type CompilerPass interface {
	Process(b *ContainerBuilder) error
}

// PassStage determines when a pass runs. Stages execute in declaration order;
// within a stage passes run by descending priority, ties broken by
// registration order.
type PassStage int

const (
	BeforeOptimization PassStage = iota
	Optimization
	BeforeRemoving
	Removing
	AfterRemoving
)

var allStages = []PassStage{BeforeOptimization, Optimization, BeforeRemoving, Removing, AfterRemoving}

func (s PassStage) String() string {
	switch s {
	case BeforeOptimization:
		return "before-optimization"
	case Optimization:
		return "optimization"
	case BeforeRemoving:
		return "before-removing"
	case Removing:
		return "removing"
	case AfterRemoving:
		return "after-removing"
	}
	return "unknown"
}

// registeredPass tracks registration order so equal priorities stay stable.
type registeredPass struct {
	pass     CompilerPass
	priority int
	seq      int
}

type passConfig struct {
	stages map[PassStage][]registeredPass
	seq    int
}

// newPassConfig seeds the standard pipeline: child-definition resolution and
// autowiring before optimization, reference validation before removal.
func newPassConfig() *passConfig {
	pc := &passConfig{stages: make(map[PassStage][]registeredPass)}
	pc.add(&resolveChildDefinitionsPass{}, BeforeOptimization, 16)
	pc.add(NewAutowirePass(), BeforeOptimization, 8)
	pc.add(NewResolveReferencesPass(), BeforeRemoving, 8)
	return pc
}

func (pc *passConfig) add(p CompilerPass, stage PassStage, priority int) {
	pc.stages[stage] = append(pc.stages[stage], registeredPass{pass: p, priority: priority, seq: pc.seq})
	pc.seq++
}

// ordered returns the passes for one stage in execution order.
func (pc *passConfig) ordered(stage PassStage) []CompilerPass {
	passes := append([]registeredPass(nil), pc.stages[stage]...)
	sort.SliceStable(passes, func(i, j int) bool {
		if passes[i].priority != passes[j].priority {
			return passes[i].priority > passes[j].priority
		}
		return passes[i].seq < passes[j].seq
	})
	out := make([]CompilerPass, len(passes))
	for i, rp := range passes {
		out[i] = rp.pass
	}
	return out
}
