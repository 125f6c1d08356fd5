//go:build !windows
// +build !windows

package grant

import (
	acl "github.com/joshlf/go-acl"
)

// faclWriter writes ACLs through the native POSIX ACL bindings rather than
// shelling out to setfacl, so failures surface as structured errors naming
// the exact path.
type faclWriter struct{}

// NewDefaultWriter returns the platform's ACL writer.
func NewDefaultWriter() Writer {
	return &faclWriter{}
}

func (w *faclWriter) MergeAccess(path string, entries []acl.Entry) error {
	cur, err := acl.Get(path)
	if err != nil {
		return err
	}
	return acl.Set(path, withMask(upsert(cur, entries), entries))
}

func (w *faclWriter) MergeDefault(path string, entries []acl.Entry) error {
	cur, err := acl.GetDefault(path)
	if err != nil || len(cur) == 0 {
		// No default ACL on this directory yet: seed one from the access
		// ACL's base entries before merging.
		access, aerr := acl.Get(path)
		if aerr != nil {
			return aerr
		}
		cur = baseEntries(access)
	}
	return acl.SetDefault(path, withMask(upsert(cur, entries), entries))
}
