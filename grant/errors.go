package grant

import (
	"errors"
	"fmt"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrNotContained = errors.New("target is not contained in root")
	ErrBadPerms     = errors.New("invalid permission string")
	ErrUnknownKind  = errors.New("unknown principal kind")
	ErrUnsupported  = errors.New("POSIX ACLs are not supported on this platform")
)

// WriteError reports an ACL write that failed, naming the path it failed on.
// A WriteError is terminal: the applier stops at the first one and earlier
// successful writes are left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("applying ACL to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
