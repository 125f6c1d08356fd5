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
	"os"

	"github.com/posixtools/aclgrant/grant"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
)

// kindIDs maps the --kind flag spellings onto principal kinds.
var kindIDs = map[grant.PrincipalKind][]string{
	grant.KindUser:  {"user", "u"},
	grant.KindGroup: {"group", "g"},
}

// Execute runs the root command and maps any failure to exit code 1.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd returns the aclgrant root command.
func NewRootCmd() *cobra.Command {
	cmd := &GrantCmd{
		Fs:     afero.NewOsFs(),
		Out:    os.Stdout,
		Writer: grant.NewDefaultWriter(),
		Exec:   grant.DefaultCmdExecutor,
	}

	root := &cobra.Command{
		Use:   "aclgrant <root_path> <target_path> [acl_description_path]",
		Short: "Grant a principal access to a directory tree, including traverse rights on the path down to it",
		Long: `aclgrant adds ACL entries for a user or group to a target directory and
everything beneath it (effective and default facets), plus read+execute
traverse entries on every directory between an ancestor root and the target,
so the grants are actually reachable.

With an ACL description file the entries are taken from the file; otherwise
the principal and permissions come from flags or interactive prompts.`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			cmd.RootPath = args[0]
			cmd.TargetPath = args[1]
			if len(args) == 3 {
				cmd.SpecFile = args[2]
			}
			return cmd.Run()
		},
	}

	root.Flags().Var(
		enumflag.New(&cmd.Kind, "kind", kindIDs, enumflag.EnumCaseInsensitive),
		"kind", "principal kind: user or group")
	root.Flags().StringVar(&cmd.Principal, "principal", "", "principal name; with --perm or --preset this skips interactive prompts")
	root.Flags().StringVar(&cmd.Perm, "perm", "", "permission string ([rwxXtT-]{1,3}) for the target subtree")
	root.Flags().StringVar(&cmd.Preset, "preset", "", "named permission preset from the presets file")
	root.Flags().StringVar(&cmd.PresetsFile, "presets-file", grant.DefaultPresetsPath, "path to the presets file")
	root.Flags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "print each directory as it is updated")

	return root
}
