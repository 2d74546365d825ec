package container_test

import (
	"fmt"
	"sync/atomic"

	"github.com/km-arc/go-symfony/framework/container"
)

// Shared service types used across the package tests.

// ── Plain services ────────────────────────────────────────────────────────────

type Logger struct {
	Lines []string
}

func NewLogger() *Logger { return &Logger{} }

func (l *Logger) Log(line string) { l.Lines = append(l.Lines, line) }

type Database struct {
	Host string
	Port int
}

func NewDatabase(host string, port int) *Database {
	return &Database{Host: host, Port: port}
}

// ── Interface with two implementations ───────────────────────────────────────

type Transport interface {
	Send(msg string) error
}

type SMTPTransport struct {
	Host string
}

func NewSMTPTransport() *SMTPTransport { return &SMTPTransport{Host: "localhost"} }

func (t *SMTPTransport) Send(string) error { return nil }

type SendmailTransport struct{}

func NewSendmailTransport() *SendmailTransport { return &SendmailTransport{} }

func (t *SendmailTransport) Send(string) error { return nil }

// ── Dependent services ────────────────────────────────────────────────────────

type Mailer struct {
	Transport Transport
	Logger    *Logger
}

func NewMailer(transport Transport) *Mailer { return &Mailer{Transport: transport} }

func (m *Mailer) SetLogger(l *Logger) { m.Logger = l }

type Newsletter struct {
	Mailer *Mailer
	Name   string
}

func NewNewsletter(mailer *Mailer, name string) *Newsletter {
	return &Newsletter{Mailer: mailer, Name: name}
}

// NilableDeps accepts a dependency that may legitimately be absent.
type NilableDeps struct {
	Logger *Logger
}

func NewNilableDeps(logger *Logger) *NilableDeps { return &NilableDeps{Logger: logger} }

// VariadicDeps has an optional trailing dependency list.
type VariadicDeps struct {
	Transports []Transport
}

func NewVariadicDeps(transports ...Transport) *VariadicDeps {
	return &VariadicDeps{Transports: transports}
}

// ── Constructor cycle pair ────────────────────────────────────────────────────

type Alpha struct{ B *Beta }

func NewAlpha(b *Beta) *Alpha { return &Alpha{B: b} }

type Beta struct{ A *Alpha }

func NewBeta(a *Alpha) *Beta { return &Beta{A: a} }

// ── Setter cycle pair ─────────────────────────────────────────────────────────

type Chicken struct{ Egg *Egg }

func NewChicken() *Chicken { return &Chicken{} }

func (c *Chicken) SetEgg(e *Egg) { c.Egg = e }

type Egg struct{ Chicken *Chicken }

func NewEgg(c *Chicken) *Egg { return &Egg{Chicken: c} }

// ── Construction counting ─────────────────────────────────────────────────────

type Counted struct{ N int64 }

func countedCtor(counter *int64) func() *Counted {
	return func() *Counted {
		return &Counted{N: atomic.AddInt64(counter, 1)}
	}
}

// ── Failing constructor ───────────────────────────────────────────────────────

type Broken struct{}

func NewBroken() (*Broken, error) { return nil, fmt.Errorf("boom") }

// ── Factory provider ──────────────────────────────────────────────────────────

type MailerFactory struct{}

func NewMailerFactory() *MailerFactory { return &MailerFactory{} }

// BuildMailer is used as a [service, method] factory target.
func (f *MailerFactory) BuildMailer(transport Transport) *Mailer {
	return &Mailer{Transport: transport}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// newRegistry builds a TypeRegistry covering the fixture types.
func newRegistry() *container.TypeRegistry {
	types := container.NewTypeRegistry()
	types.MustRegister("test.Logger", NewLogger).
		MustRegister("test.Database", NewDatabase).
		MustRegister("test.SMTPTransport", NewSMTPTransport).
		MustRegister("test.SendmailTransport", NewSendmailTransport).
		MustRegister("test.Mailer", NewMailer).
		MustRegister("test.Newsletter", NewNewsletter).
		MustRegister("test.NilableDeps", NewNilableDeps).
		MustRegister("test.VariadicDeps", NewVariadicDeps).
		MustRegister("test.Alpha", NewAlpha).
		MustRegister("test.Beta", NewBeta).
		MustRegister("test.Chicken", NewChicken).
		MustRegister("test.Egg", NewEgg).
		MustRegister("test.MailerFactory", NewMailerFactory)
	return types
}
