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
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// CmdExecutor runs a command and returns its combined output. It exists so
// unit tests can capture the expanded command instead of executing it.
type CmdExecutor func(name string, arg ...string) ([]byte, error)

func DefaultCmdExecutor(name string, arg ...string) ([]byte, error) {
	return exec.Command(name, arg...).CombinedOutput()
}

// RunVerify expands %{path} in the configured verify command template and
// executes it against the target. The path is shell-quoted before expansion
// so a target containing spaces stays a single argument.
func RunVerify(template, path string, execute CmdExecutor) ([]byte, error) {
	if execute == nil {
		execute = DefaultCmdExecutor
	}
	expanded := strings.ReplaceAll(template, "%{path}", shellquote.Join(path))
	argv, err := shellquote.Split(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verify command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("verify command is empty")
	}
	return execute(argv[0], argv[1:]...)
}
