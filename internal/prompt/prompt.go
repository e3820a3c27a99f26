// Package prompt abstracts how missing inputs are gathered. Interactive
// runs read from the controlling terminal; scripted runs fail fast on any
// required field that wasn't supplied up front. Components depend on the
// Source capability, not on a concrete mode.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/rig/internal/errors"
)

// Source supplies values that weren't provided via flags or config.
type Source interface {
	// Input asks for a plain text value. field is the flag name used in
	// error messages when the source can't supply the value.
	Input(field, title, placeholder string) (string, error)

	// Secret asks for a sensitive value with terminal echo suppressed.
	Secret(field, title string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)

	// MultiSelect asks the user to pick any number of options.
	MultiSelect(title string, options []string) ([]string, error)
}

// Interactive prompts on the controlling terminal using huh forms.
type Interactive struct{}

// NewInteractive creates a terminal-backed prompt source.
func NewInteractive() *Interactive {
	return &Interactive{}
}

func (p *Interactive) Input(field, title, placeholder string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("%s is required", field)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to read %s", field),
			"Check terminal compatibility or pass --"+field)
	}
	return strings.TrimSpace(value), nil
}

func (p *Interactive) Secret(field, title string) (string, error) {
	// Secrets bypass huh: echo suppression must work even when stdin is
	// consumed by a pipe, which means reading from /dev/tty directly.
	value, err := readSecretFromTerminal(title)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to read %s", field),
			"Pass --"+field+" or run from a terminal")
	}
	return value, nil
}

func (p *Interactive) Confirm(title string, def bool) (bool, error) {
	value := def

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return def, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get confirmation",
			"Check terminal compatibility")
	}
	return value, nil
}

func (p *Interactive) MultiSelect(title string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}

	var selected []string
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(title).
				Options(opts...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get selection",
			"Check terminal compatibility or pass --keys")
	}
	return selected, nil
}

// Scripted never prompts. Required fields that weren't supplied become
// MissingCredential-class errors, selections default to everything, and
// confirmations take their default.
type Scripted struct{}

// NewScripted creates the non-interactive prompt source.
func NewScripted() *Scripted {
	return &Scripted{}
}

func (p *Scripted) Input(field, title, placeholder string) (string, error) {
	return "", errors.NewMissingCredential(field)
}

func (p *Scripted) Secret(field, title string) (string, error) {
	return "", errors.NewMissingCredential(field)
}

func (p *Scripted) Confirm(title string, def bool) (bool, error) {
	return def, nil
}

func (p *Scripted) MultiSelect(title string, options []string) ([]string, error) {
	// Non-interactive with no explicit selection means "all".
	return options, nil
}
