package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-symfony/framework/container"
)

func TestResolveReferences_MissingThrowTarget_FailsCompile(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer", "test.Mailer").
		AddArgument(container.NewReference("ghost.transport"))

	_, err := b.Compile()

	var missing *container.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "mailer", missing.ServiceID)
	assert.Equal(t, "ghost.transport", missing.TargetID)
}

func TestResolveReferences_MissingIgnoreTarget_CompilesAndOmits(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("deps", "test.VariadicDeps").
		AddArgument(container.NewReferenceWithBehavior("ghost", container.IgnoreOnInvalid))

	c, err := b.Compile()
	require.NoError(t, err)

	d, err := container.Resolve[*VariadicDeps](c, "deps")
	require.NoError(t, err)
	assert.Empty(t, d.Transports)
}

func TestResolveReferences_MissingNilTarget_CompilesAndResolvesNil(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("deps", "test.NilableDeps").
		AddArgument(container.NewReferenceWithBehavior("ghost", container.NilOnInvalid))

	c, err := b.Compile()
	require.NoError(t, err)

	d, err := container.Resolve[*NilableDeps](c, "deps")
	require.NoError(t, err)
	assert.Nil(t, d.Logger)
}

func TestResolveReferences_ChecksNestedArguments(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("deps", "test.VariadicDeps").
		AddArgument([]any{container.NewReference("ghost")})

	_, err := b.Compile()

	var missing *container.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "deps", missing.ServiceID)
}

func TestResolveReferences_ChecksMethodCallArguments(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport", "test.SMTPTransport")
	b.Register("mailer", "test.Mailer").
		AddArgument(container.NewReference("transport")).
		AddMethodCall("SetLogger", container.NewReference("ghost.logger"))

	_, err := b.Compile()

	var missing *container.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost.logger", missing.TargetID)
}

func TestResolveReferences_ChecksFactoryService(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer", "").
		SetFactoryService(container.NewReference("ghost.factory"), "BuildMailer")

	_, err := b.Compile()

	var missing *container.MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost.factory", missing.TargetID)
}

func TestResolveReferences_AliasTargetSatisfies(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport.smtp", "test.SMTPTransport")
	b.SetAlias("transport", "transport.smtp")
	b.Register("mailer", "test.Mailer").
		AddArgument(container.NewReference("transport"))

	_, err := b.Compile()

	require.NoError(t, err)
}

func TestResolveReferences_SkipsAbstractDefinitions(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer.template", "test.Mailer").
		SetAbstract(true).
		AddArgument(container.NewReference("ghost"))

	_, err := b.Compile()

	require.NoError(t, err)
}
