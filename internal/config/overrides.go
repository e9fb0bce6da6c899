package config

import "github.com/3-lines-studio/svger/internal/core"

// Overrides carry settings from the environment or the command line.
// Nil fields leave the config untouched.
type Overrides struct {
	Source           *string
	Output           *string
	Framework        *string
	TypeScript       *bool
	Naming           *string
	LogLevel         *string
	Concurrency      *int
	FrameworkOptions core.FrameworkOptions
}

// Apply layers o over c. Call it once per source, lowest precedence
// first.
func (c Config) Apply(o Overrides) Config {
	if o.Source != nil {
		c.Source = *o.Source
	}
	if o.Output != nil {
		c.Output = *o.Output
	}
	if o.Framework != nil {
		c.Framework = *o.Framework
	}
	if o.TypeScript != nil {
		c.TypeScript = *o.TypeScript
	}
	if o.Naming != nil {
		c.Naming = *o.Naming
	}
	if o.LogLevel != nil {
		c.ErrorHandling.LogLevel = *o.LogLevel
	}
	if o.Concurrency != nil {
		c.Performance.Concurrency = *o.Concurrency
	}
	c.FrameworkOptions = c.FrameworkOptions.Merge(o.FrameworkOptions)
	return c
}
