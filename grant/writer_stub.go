//go:build windows
// +build windows

package grant

import (
	acl "github.com/joshlf/go-acl"
)

type stubWriter struct{}

// NewDefaultWriter returns the platform's ACL writer. Windows has no POSIX
// ACL facets; every write fails with ErrUnsupported.
func NewDefaultWriter() Writer {
	return &stubWriter{}
}

func (w *stubWriter) MergeAccess(path string, entries []acl.Entry) error {
	return ErrUnsupported
}

func (w *stubWriter) MergeDefault(path string, entries []acl.Entry) error {
	return ErrUnsupported
}
