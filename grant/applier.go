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

package grant

import (
	"fmt"
	"io"
	"os"

	acl "github.com/joshlf/go-acl"
	"github.com/spf13/afero"
)

// Writer merges ACL entries into a path's existing ACL, preserving unrelated
// entries. MergeAccess writes the effective facet, MergeDefault the default
// (inherited) facet of a directory. Implementations are platform-specific;
// tests use a recording fake.
type Writer interface {
	MergeAccess(path string, entries []acl.Entry) error
	MergeDefault(path string, entries []acl.Entry) error
}

// Applier applies a permission spec to a resolved path pair. Writes are
// sequential and blocking: a parent directory always has traverse rights
// before anything below it is touched, and the first failure aborts the run
// with no rollback of earlier writes.
type Applier struct {
	Fs      afero.Fs
	Writer  Writer
	Out     io.Writer
	Verbose bool
}

// Apply runs the three phases in order: traverse entries on each chain
// directory root-first, then the full entries recursively on the target's
// effective ACLs, then the full entries recursively as default ACLs on every
// directory under target. Later phases never start after a failure.
func (a *Applier) Apply(pair PathPair, chain []string, spec Spec) error {
	for _, dir := range chain {
		if err := a.Writer.MergeAccess(dir, aclEntries(spec.Traverse, true, 0)); err != nil {
			return &WriteError{Path: dir, Err: err}
		}
		a.progress("traverse %s\n", dir)
	}

	err := afero.Walk(a.Fs, pair.Target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		entries := aclEntries(spec.Full, info.IsDir(), info.Mode())
		if werr := a.Writer.MergeAccess(path, entries); werr != nil {
			return &WriteError{Path: path, Err: werr}
		}
		a.progress("access %s\n", path)
		return nil
	})
	if err != nil {
		return err
	}

	return afero.Walk(a.Fs, pair.Target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if werr := a.Writer.MergeDefault(path, aclEntries(spec.Full, true, 0)); werr != nil {
			return &WriteError{Path: path, Err: werr}
		}
		a.progress("default %s\n", path)
		return nil
	})
}

func (a *Applier) progress(format string, args ...any) {
	if a.Verbose && a.Out != nil {
		fmt.Fprintf(a.Out, format, args...)
	}
}
