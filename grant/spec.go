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
	"strings"

	"github.com/spf13/afero"
)

// Spec carries the two entry sets of a run. Traverse entries go on every
// intermediate directory; Full entries go recursively on the target subtree,
// both as effective and as default ACLs. Traverse entries are always rX no
// matter what the full entries grant.
type Spec struct {
	Traverse []Entry
	Full     []Entry
}

// BuildSingle derives a spec from one principal/permission pair. The entry
// must already be resolved.
func BuildSingle(e Entry) Spec {
	return Spec{
		Full:     []Entry{e},
		Traverse: []Entry{{Kind: e.Kind, Name: e.Name, ID: e.ID, Perms: TraversePerms}},
	}
}

// BuildFromFile derives a spec from an ACL description file of
// kind:name:perms lines. Blank lines and # comments are skipped, as are
// default: lines. User and group entries are kept verbatim for the full set;
// only named user and group entries contribute traverse entries, each forced
// to rX. Mask and other entries ride along in the full set untouched.
func BuildFromFile(fsys afero.Fs, path string) (Spec, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading ACL description %s: %w", path, err)
	}
	var spec Spec
	for i, raw := range strings.Split(string(content), "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "default:") || strings.HasPrefix(line, "d:") {
			continue
		}
		entry, err := ParseEntry(line)
		if err != nil {
			return Spec{}, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		spec.Full = append(spec.Full, entry)
		if entry.Named() {
			spec.Traverse = append(spec.Traverse, Entry{
				Kind:  entry.Kind,
				Name:  entry.Name,
				ID:    entry.ID,
				Perms: TraversePerms,
			})
		}
	}
	return spec, nil
}

// cleanLine strips comments and surrounding whitespace from one line of an
// ACL description file.
func cleanLine(line string) string {
	return strings.TrimSpace(strings.Split(line, "#")[0])
}

// ParseEntry parses a single kind:name:perms triple. Named user and group
// entries are resolved against the identity store; mask and other entries
// must have an empty name field.
func ParseEntry(line string) (Entry, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("malformed ACL entry %q (want kind:name:perms)", line)
	}
	var kind PrincipalKind
	switch parts[0] {
	case "u", "user":
		kind = KindUser
	case "g", "group":
		kind = KindGroup
	case "m", "mask":
		kind = KindMask
	case "o", "other":
		kind = KindOther
	default:
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownKind, parts[0])
	}
	name, perms := parts[1], parts[2]
	if (kind == KindMask || kind == KindOther) && name != "" {
		return Entry{}, fmt.Errorf("%s entries cannot name a principal: %q", kind, line)
	}
	if !ValidPerms(perms) {
		return Entry{}, fmt.Errorf("%w: %q", ErrBadPerms, perms)
	}
	entry := Entry{Kind: kind, Name: name, Perms: perms}
	if err := entry.Resolve(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
