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
	"os"
	"os/user"
	"regexp"

	acl "github.com/joshlf/go-acl"
)

// PrincipalKind identifies what an ACL entry is granted to. User and group
// entries may carry a principal name; mask and other entries never do.
type PrincipalKind int

const (
	KindUser PrincipalKind = iota
	KindGroup
	KindMask
	KindOther
)

func (k PrincipalKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindGroup:
		return "group"
	case KindMask:
		return "mask"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TraversePerms is the permission string applied to every intermediate
// directory between root and target: enough to list and descend, nothing more.
const TraversePerms = "rX"

// DefaultPerms is the permission string offered when the user does not
// supply one.
const DefaultPerms = "rwX"

// permsPattern is the accepted permission grammar. The sticky-bit letters t
// and T pass validation but contribute no bits to an ACL entry (POSIX ACL
// entries carry only rwx).
var permsPattern = regexp.MustCompile(`^[rwxXtT-]{1,3}$`)

// ValidPerms reports whether s matches the permission grammar.
func ValidPerms(s string) bool {
	return permsPattern.MatchString(s)
}

// ModeFor resolves a permission string against a concrete filesystem object.
// Capital X grants execute on directories unconditionally, and on files only
// when the file already has an execute bit set.
func ModeFor(perms string, isDir bool, mode os.FileMode) os.FileMode {
	var m os.FileMode
	for _, r := range perms {
		switch r {
		case 'r':
			m |= 4
		case 'w':
			m |= 2
		case 'x':
			m |= 1
		case 'X':
			if isDir || mode&0111 != 0 {
				m |= 1
			}
		}
	}
	return m
}

// Lookup funcs are package vars so tests can substitute fakes that do not
// touch the host's identity store.
var (
	LookupUser  = user.Lookup
	LookupGroup = user.LookupGroup
)

// Entry is one principal/permission pair of a permission spec. ID is the
// numeric uid or gid, filled in by Resolve for named user and group entries.
type Entry struct {
	Kind  PrincipalKind
	Name  string
	ID    string
	Perms string
}

// Named reports whether the entry grants to a named user or group (as
// opposed to a base, mask or other entry).
func (e Entry) Named() bool {
	return (e.Kind == KindUser || e.Kind == KindGroup) && e.Name != ""
}

// Resolve validates that the entry's principal exists in the system identity
// store and records its numeric id. Entries without a principal name resolve
// trivially.
func (e *Entry) Resolve() error {
	if !e.Named() {
		return nil
	}
	switch e.Kind {
	case KindUser:
		u, err := LookupUser(e.Name)
		if err != nil {
			return fmt.Errorf("user %q: %w", e.Name, err)
		}
		e.ID = u.Uid
	case KindGroup:
		g, err := LookupGroup(e.Name)
		if err != nil {
			return fmt.Errorf("group %q: %w", e.Name, err)
		}
		e.ID = g.Gid
	}
	return nil
}

func (e Entry) tag() acl.Tag {
	switch e.Kind {
	case KindUser:
		if e.Name == "" {
			return acl.TagUserObj
		}
		return acl.TagUser
	case KindGroup:
		if e.Name == "" {
			return acl.TagGroupObj
		}
		return acl.TagGroup
	case KindMask:
		return acl.TagMask
	default:
		return acl.TagOther
	}
}

// aclEntry converts the entry for a concrete object, resolving capital X
// against the object's kind and current mode.
func (e Entry) aclEntry(isDir bool, mode os.FileMode) acl.Entry {
	out := acl.Entry{
		Tag:   e.tag(),
		Perms: ModeFor(e.Perms, isDir, mode),
	}
	if e.Named() {
		out.Qualifier = e.ID
	}
	return out
}

// aclEntries converts a whole entry set for a concrete object.
func aclEntries(entries []Entry, isDir bool, mode os.FileMode) []acl.Entry {
	out := make([]acl.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.aclEntry(isDir, mode))
	}
	return out
}
