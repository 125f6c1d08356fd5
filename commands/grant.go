// Copyright 2025 posixtools
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/posixtools/aclgrant/grant"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// IsTerminalFunc is a testable indirection for the TTY check that guards
// interactive prompting. Tests may override it.
var IsTerminalFunc = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// GrantCmd wires the resolver, chain enumerator, spec builder and applier
// together for one run. All collaborators are fields so tests can inject an
// in-memory filesystem and a recording ACL writer.
type GrantCmd struct {
	Fs     afero.Fs
	Out    io.Writer
	In     io.Reader
	Writer grant.Writer
	Exec   grant.CmdExecutor

	RootPath   string
	TargetPath string
	SpecFile   string

	Kind        grant.PrincipalKind
	Principal   string
	Perm        string
	Preset      string
	PresetsFile string
	Verbose     bool
}

// Run executes one grant: validate inputs, derive the entry sets, apply the
// traverse chain and the recursive facets, then run the verify hook if one
// is configured. Any error leaves earlier writes in place and is terminal.
func (c *GrantCmd) Run() error {
	pair, err := grant.Resolve(c.Fs, c.RootPath, c.TargetPath)
	if err != nil {
		return err
	}
	chain := grant.Chain(pair)

	presets, err := c.loadPresets()
	if err != nil {
		return err
	}

	spec, err := c.buildSpec(presets)
	if err != nil {
		return err
	}

	applier := &grant.Applier{Fs: c.Fs, Writer: c.Writer, Out: c.Out, Verbose: c.Verbose}
	if err := applier.Apply(pair, chain, spec); err != nil {
		return err
	}

	if presets != nil && presets.VerifyCommand != "" {
		output, err := grant.RunVerify(presets.VerifyCommand, pair.Target, c.Exec)
		if err != nil {
			return fmt.Errorf("verify command failed: %w", err)
		}
		if c.Verbose && len(output) > 0 {
			fmt.Fprintf(c.Out, "%s", output)
		}
	}

	fmt.Fprintf(c.Out, "granted: %d traverse directories updated, %s applied recursively\n", len(chain), pair.Target)
	return nil
}

// loadPresets reads the presets file when one is needed. A missing file at
// the default location is not an error unless --preset was requested.
func (c *GrantCmd) loadPresets() (*grant.Presets, error) {
	path := c.PresetsFile
	if path == "" {
		path = grant.DefaultPresetsPath
	}
	exists, err := afero.Exists(c.Fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		if c.Preset != "" {
			return nil, fmt.Errorf("--preset %q requested but presets file %s does not exist", c.Preset, path)
		}
		return nil, nil
	}
	return grant.LoadPresets(c.Fs, path)
}

// buildSpec derives the traverse and full entry sets in one of the three
// input modes: description file, flags, or interactive prompts.
func (c *GrantCmd) buildSpec(presets *grant.Presets) (grant.Spec, error) {
	if c.SpecFile != "" {
		return grant.BuildFromFile(c.Fs, c.SpecFile)
	}

	if c.Principal != "" {
		entry, err := c.entryFromFlags(presets)
		if err != nil {
			return grant.Spec{}, err
		}
		return grant.BuildSingle(entry), nil
	}

	if !IsTerminalFunc() {
		return grant.Spec{}, fmt.Errorf("stdin is not a terminal; pass an ACL description file or --principal with --kind and --perm")
	}
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	prompter := &Prompter{In: in, Out: c.Out}
	entry, err := prompter.Collect()
	if err != nil {
		return grant.Spec{}, err
	}
	return grant.BuildSingle(entry), nil
}

func (c *GrantCmd) entryFromFlags(presets *grant.Presets) (grant.Entry, error) {
	perms := c.Perm
	if c.Preset != "" {
		if c.Perm != "" {
			return grant.Entry{}, fmt.Errorf("--perm and --preset are mutually exclusive")
		}
		resolved, err := presets.Lookup(c.Preset)
		if err != nil {
			return grant.Entry{}, err
		}
		perms = resolved
	}
	if perms == "" {
		perms = grant.DefaultPerms
	}
	if !grant.ValidPerms(perms) {
		return grant.Entry{}, fmt.Errorf("%w: %q", grant.ErrBadPerms, perms)
	}
	entry := grant.Entry{Kind: c.Kind, Name: c.Principal, Perms: perms}
	if err := entry.Resolve(); err != nil {
		return grant.Entry{}, err
	}
	return entry, nil
}
