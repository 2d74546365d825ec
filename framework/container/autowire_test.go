package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-symfony/framework/container"
)

func TestAutowire_SingleInterfaceImplementation_Binds(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport", "test.SMTPTransport")
	b.Register("mailer", "test.Mailer").SetAutowired(true)

	c, err := b.Compile()
	require.NoError(t, err)

	m, err := container.Resolve[*Mailer](c, "mailer")
	require.NoError(t, err)
	assert.IsType(t, &SMTPTransport{}, m.Transport)
}

func TestAutowire_TwoImplementations_FailsAmbiguous(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport.smtp", "test.SMTPTransport")
	b.Register("transport.sendmail", "test.SendmailTransport")
	b.Register("mailer", "test.Mailer").SetAutowired(true)

	_, err := b.Compile()

	var autowireErr *container.AutowireError
	require.ErrorAs(t, err, &autowireErr)
	assert.Equal(t, "mailer", autowireErr.ID)
	assert.Contains(t, err.Error(), "ambiguous")
	assert.Contains(t, err.Error(), "transport.smtp")
	assert.Contains(t, err.Error(), "transport.sendmail")
}

func TestAutowire_ExactTypeNameID_BeatsCandidateScan(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport.smtp", "test.SMTPTransport")
	b.Register("transport.sendmail", "test.SendmailTransport")
	// ambiguity resolved by registering an id equal to the parameter type name
	b.SetAlias(container.TypeKey((*Transport)(nil)), "transport.sendmail")
	b.Register("mailer", "test.Mailer").SetAutowired(true)

	c, err := b.Compile()
	require.NoError(t, err)

	m, err := container.Resolve[*Mailer](c, "mailer")
	require.NoError(t, err)
	assert.IsType(t, &SendmailTransport{}, m.Transport)
}

func TestAutowire_ZeroCandidates_NonNilable_Fails(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer", "test.Mailer").SetAutowired(true)

	_, err := b.Compile()

	var autowireErr *container.AutowireError
	require.ErrorAs(t, err, &autowireErr)
	assert.Equal(t, "mailer", autowireErr.ID)
	assert.Contains(t, err.Error(), "no service produces type")
	assert.Contains(t, err.Error(), "Transport")
}

func TestAutowire_ZeroCandidates_InterfaceParameter_NeverBindsNil(t *testing.T) {
	// An interface dependency with no producer must fail at compile time,
	// not bind a nil that explodes when the service is first used.
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer", "test.Mailer").SetAutowired(true)
	b.Register("newsletter", "test.Newsletter").
		SetAutowired(true).
		SetArgument(1, "weekly")

	c, err := b.Compile()

	var autowireErr *container.AutowireError
	require.ErrorAs(t, err, &autowireErr)
	assert.Nil(t, c)
}

func TestAutowire_ZeroCandidates_NilableParameter_BindsNil(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("deps", "test.NilableDeps").SetAutowired(true)

	c, err := b.Compile()
	require.NoError(t, err)

	d, err := container.Resolve[*NilableDeps](c, "deps")
	require.NoError(t, err)
	assert.Nil(t, d.Logger)
}

func TestAutowire_TrailingVariadic_OmittedWhenUnfilled(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("deps", "test.VariadicDeps").SetAutowired(true)

	c, err := b.Compile()
	require.NoError(t, err)

	d, err := container.Resolve[*VariadicDeps](c, "deps")
	require.NoError(t, err)
	assert.Empty(t, d.Transports)
}

func TestAutowire_ExplicitArgument_NeverOverwritten(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport.smtp", "test.SMTPTransport")
	b.Register("transport.sendmail", "test.SendmailTransport")
	// ambiguous by scan, but the argument is supplied explicitly
	b.Register("mailer", "test.Mailer").
		SetAutowired(true).
		SetArgument(0, container.NewReference("transport.sendmail"))

	c, err := b.Compile()
	require.NoError(t, err)

	m, err := container.Resolve[*Mailer](c, "mailer")
	require.NoError(t, err)
	assert.IsType(t, &SendmailTransport{}, m.Transport)
}

func TestAutowire_SparseArgument_Filled(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer", "test.Mailer").SetAutowired(true)
	b.Register("transport", "test.SMTPTransport")
	// position 0 (the *Mailer) is left unset; position 1 is explicit
	b.Register("newsletter", "test.Newsletter").
		SetAutowired(true).
		SetArgument(1, "weekly")

	c, err := b.Compile()
	require.NoError(t, err)

	n, err := container.Resolve[*Newsletter](c, "newsletter")
	require.NoError(t, err)
	assert.Equal(t, "weekly", n.Name)
	require.NotNil(t, n.Mailer)
	assert.IsType(t, &SMTPTransport{}, n.Mailer.Transport)
}

func TestAutowire_FactoryDefinition_IsACandidate(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("transport", "").
		SetFactory(func() *SMTPTransport { return &SMTPTransport{Host: "factory"} })
	b.Register("mailer", "test.Mailer").SetAutowired(true)

	c, err := b.Compile()
	require.NoError(t, err)

	m, err := container.Resolve[*Mailer](c, "mailer")
	require.NoError(t, err)
	smtp, ok := m.Transport.(*SMTPTransport)
	require.True(t, ok)
	assert.Equal(t, "factory", smtp.Host)
}

func TestAutowire_UnregisteredClass_Fails(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mystery", "test.Unknown").SetAutowired(true)

	_, err := b.Compile()

	var autowireErr *container.AutowireError
	require.ErrorAs(t, err, &autowireErr)
	assert.Contains(t, err.Error(), "no registered constructor")
}

func TestAutowire_SkipsAbstractAndSynthetic(t *testing.T) {
	b := container.NewContainerBuilder(newRegistry())
	b.Register("mailer.template", "test.Mailer").SetAutowired(true).SetAbstract(true)
	b.Register("request", "").SetAutowired(true).SetSynthetic(true)

	// neither definition can be satisfied, but neither is processed
	_, err := b.Compile()
	require.NoError(t, err)
}
