package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/minipack/internal/graph"
	"github.com/specialistvlad/minipack/internal/runtime"
	"github.com/specialistvlad/minipack/internal/scanner"
)

// DefaultOutput is where the bundle is written when no output is configured.
const DefaultOutput = "dist/bundle.js"

// Model is the raw build configuration. Empty fields and a nil Verify are unset.
type Model struct {
	Entry      string
	Output     string
	BaseDir    string
	Resolution string
	Instancing string
	Cycles     string
	Scanner    string
	Verify     *bool
}

// Bool returns a pointer to v, for setting Model.Verify.
func Bool(v bool) *bool {
	return &v
}

// Settings is a validated build configuration with defaults applied.
type Settings struct {
	Entry  string
	Output string
	// BaseDir may stay empty, in which case the entry's directory is used.
	BaseDir    string
	Resolution graph.Resolution
	Instancing runtime.Instancing
	Cycles     graph.CyclePolicy
	Scanner    scanner.Kind
	Verify     bool
}

// Merge returns a new Model with the set fields of override applied on top
// of base. Either argument may be nil.
func Merge(base, override *Model) *Model {
	out := &Model{}
	if base != nil {
		*out = *base
	}
	if override == nil {
		return out
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.Entry, override.Entry)
	set(&out.Output, override.Output)
	set(&out.BaseDir, override.BaseDir)
	set(&out.Resolution, override.Resolution)
	set(&out.Instancing, override.Instancing)
	set(&out.Cycles, override.Cycles)
	set(&out.Scanner, override.Scanner)
	if override.Verify != nil {
		out.Verify = Bool(*override.Verify)
	}
	return out
}

// Settings validates m and returns the typed configuration.
func (m *Model) Settings() (*Settings, error) {
	if m.Entry == "" {
		return nil, errors.New("entry is a required configuration field and cannot be empty")
	}

	s := &Settings{
		Entry:   m.Entry,
		Output:  m.Output,
		BaseDir: m.BaseDir,
		Scanner: scanner.Kind(m.Scanner),
		Verify:  m.Verify != nil && *m.Verify,
	}
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	if s.Scanner == "" {
		s.Scanner = scanner.KindLexical
	}
	if _, err := scanner.New(s.Scanner); err != nil {
		return nil, err
	}

	var err error
	if s.Resolution, err = graph.ParseResolution(m.Resolution); err != nil {
		return nil, err
	}
	if s.Instancing, err = runtime.ParseInstancing(m.Instancing); err != nil {
		return nil, err
	}
	if s.Cycles, err = graph.ParseCyclePolicy(m.Cycles); err != nil {
		return nil, err
	}

	// A cyclic bundle only terminates when every module runs once.
	if s.Cycles == graph.CyclesAllow && s.Instancing != runtime.Cached {
		return nil, fmt.Errorf("cycles = %q requires instancing = %q", graph.CyclesAllow, runtime.Cached)
	}
	return s, nil
}
