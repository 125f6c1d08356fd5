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
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// DefaultPresetsPath is where site administrators keep named permission
// presets and the optional post-apply verification command.
const DefaultPresetsPath = "/etc/aclgrant/presets.yml"

// Presets maps memorable names to permission strings so operators don't have
// to remember rwX spellings, and optionally configures a command to run
// against the target after a successful apply.
type Presets struct {
	Presets       map[string]string `yaml:"presets"`
	VerifyCommand string            `yaml:"verify_command"`
}

// LoadPresets reads and validates a presets file. Every preset's permission
// string must match the same grammar as user-supplied permissions.
func LoadPresets(fsys afero.Fs, path string) (*Presets, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}
	var p Presets
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}
	for name, perms := range p.Presets {
		if !ValidPerms(perms) {
			return nil, fmt.Errorf("preset %q in %s: %w: %q", name, path, ErrBadPerms, perms)
		}
	}
	return &p, nil
}

// Lookup resolves a preset name to its permission string. Unknown names are
// reported together with the sorted list of available presets.
func (p *Presets) Lookup(name string) (string, error) {
	if perms, ok := p.Presets[name]; ok {
		return perms, nil
	}
	names := maps.Keys(p.Presets)
	sort.Strings(names)
	return "", fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names, ", "))
}
