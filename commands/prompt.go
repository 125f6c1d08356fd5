package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/posixtools/aclgrant/grant"
)

// promptState tracks the interactive input flow. Permission input gets
// exactly one retry; everything else fails on the first invalid answer.
type promptState int

const (
	stateAwaitKind promptState = iota
	stateAwaitName
	stateAwaitPermission
	stateRetry
	stateAccepted
	stateRejected
)

// Prompter collects a single validated principal/permission pair from the
// user. It never touches the filesystem; the caller hands the resulting
// entry to the spec builder.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Collect walks the prompt state machine and returns a resolved entry. The
// principal is validated against the system identity store as soon as its
// name is entered; an unknown principal is fatal, an invalid permission
// string is re-prompted once and then fatal.
func (p *Prompter) Collect() (grant.Entry, error) {
	reader := bufio.NewReader(p.In)
	var entry grant.Entry

	state := stateAwaitKind
	for {
		switch state {
		case stateAwaitKind:
			fmt.Fprint(p.Out, "Principal type ([u]ser/[g]roup): ")
			line, err := readLine(reader)
			if err != nil {
				return entry, err
			}
			switch strings.ToLower(line) {
			case "u", "user":
				entry.Kind = grant.KindUser
				state = stateAwaitName
			case "g", "group":
				entry.Kind = grant.KindGroup
				state = stateAwaitName
			default:
				return entry, fmt.Errorf("invalid principal type %q (want u or g)", line)
			}

		case stateAwaitName:
			fmt.Fprintf(p.Out, "%s name: ", entry.Kind)
			line, err := readLine(reader)
			if err != nil {
				return entry, err
			}
			entry.Name = line
			if err := entry.Resolve(); err != nil {
				return entry, err
			}
			state = stateAwaitPermission

		case stateAwaitPermission, stateRetry:
			fmt.Fprintf(p.Out, "Permissions [%s]: ", grant.DefaultPerms)
			line, err := readLine(reader)
			if err != nil {
				return entry, err
			}
			if line == "" {
				entry.Perms = grant.DefaultPerms
				state = stateAccepted
				break
			}
			if !grant.ValidPerms(line) {
				if state == stateRetry {
					state = stateRejected
					break
				}
				fmt.Fprintf(p.Out, "invalid permission string %q (want [rwxXtT-]{1,3})\n", line)
				state = stateRetry
				break
			}
			entry.Perms = line
			state = stateAccepted

		case stateAccepted:
			return entry, nil

		case stateRejected:
			return entry, fmt.Errorf("%w: giving up after retry", grant.ErrBadPerms)
		}
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
