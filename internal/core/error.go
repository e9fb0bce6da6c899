package core

import (
	"fmt"
	"strings"
)

type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("svg source not found: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

type UnsupportedFrameworkError struct {
	Framework string
}

func (e *UnsupportedFrameworkError) Error() string {
	names := make([]string, len(Targets))
	for i, t := range Targets {
		names[i] = string(t)
	}
	return fmt.Sprintf("unsupported framework %q (expected one of: %s)", e.Framework, strings.Join(names, ", "))
}

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type UnsupportedConventionError struct {
	Convention string
}

func (e *UnsupportedConventionError) Error() string {
	return fmt.Sprintf("unsupported naming convention %q (expected pascal, camel or kebab)", e.Convention)
}
