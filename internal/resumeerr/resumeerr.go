// Package resumeerr defines the error taxonomy for resume generation.
// Every failure surfaced to the CLI is one of three kinds: configuration
// (the input file or directory itself is missing or unreadable), data
// (the input parsed but failed validation or reference resolution), or
// template (the template failed to load or render). The kind determines
// the prefix shown to the user.
package resumeerr

import (
	"errors"
	"fmt"
)

// Kind classifies errors for user-facing reporting.
type Kind int

const (
	// KindConfig indicates a missing or unreadable input file/directory.
	KindConfig Kind = iota

	// KindData indicates a schema validation or reference resolution failure.
	KindData

	// KindTemplate indicates a template load or render failure.
	KindTemplate

	// KindUnknown is the fallback for unclassified errors.
	KindUnknown
)

// Prefix returns the display prefix for this error kind.
func (k Kind) Prefix() string {
	prefixes := []string{
		"[CONFIG]",
		"[DATA]",
		"[TEMPLATE]",
		"[ERROR]",
	}
	if int(k) < len(prefixes) {
		return prefixes[k]
	}
	return "[ERROR]"
}

// String returns the kind name.
func (k Kind) String() string {
	names := []string{
		"config",
		"data",
		"template",
		"unknown",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ConfigError reports a missing or unreadable input.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DataError reports a validation or reference resolution failure.
// File names the offending YAML file when the failure is tied to one;
// Profile and Ref locate a failed profile lookup or ID resolution.
type DataError struct {
	File    string
	Profile string
	Ref     string
	Err     error
}

func (e *DataError) Error() string {
	switch {
	case e.Profile != "":
		return fmt.Sprintf("profile %q: %v", e.Profile, e.Err)
	case e.File != "":
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return e.Err.Error()
}

func (e *DataError) Unwrap() error { return e.Err }

// TemplateError reports a template load or render failure.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template %s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *TemplateError) Unwrap() error { return e.Err }

// KindOf classifies an error chain into a Kind.
func KindOf(err error) Kind {
	var (
		ce *ConfigError
		de *DataError
		te *TemplateError
	)
	switch {
	case errors.As(err, &ce):
		return KindConfig
	case errors.As(err, &de):
		return KindData
	case errors.As(err, &te):
		return KindTemplate
	}
	return KindUnknown
}
