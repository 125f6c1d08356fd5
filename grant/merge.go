package grant

import (
	acl "github.com/joshlf/go-acl"
)

// upsert adds entries to cur, overwriting an existing entry when tag and
// qualifier match. Unrelated entries are left untouched.
func upsert(cur acl.ACL, entries []acl.Entry) acl.ACL {
	merged := append(acl.ACL(nil), cur...)
	for _, e := range entries {
		found := false
		for i, existing := range merged {
			if existing.Tag == e.Tag && existing.Qualifier == e.Qualifier {
				merged[i] = e
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, e)
		}
	}
	return merged
}

// withMask recalculates the mask entry as the union of all group-class
// permissions (group owner plus named users and groups), the same way
// setfacl does when entries are added. An explicit mask among the added
// entries wins over recalculation.
func withMask(merged acl.ACL, added []acl.Entry) acl.ACL {
	for _, e := range added {
		if e.Tag == acl.TagMask {
			return merged
		}
	}
	var union acl.Entry
	union.Tag = acl.TagMask
	for _, e := range merged {
		switch e.Tag {
		case acl.TagGroupObj, acl.TagUser, acl.TagGroup:
			union.Perms |= e.Perms
		}
	}
	return upsert(merged, []acl.Entry{union})
}

// baseEntries extracts the three base entries of an access ACL, used to seed
// a directory's first default ACL the way setfacl -d -m does.
func baseEntries(access acl.ACL) acl.ACL {
	var base acl.ACL
	for _, e := range access {
		switch e.Tag {
		case acl.TagUserObj, acl.TagGroupObj, acl.TagOther:
			base = append(base, e)
		}
	}
	return base
}
