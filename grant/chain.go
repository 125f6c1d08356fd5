package grant

import "path/filepath"

// Chain returns the directories that must carry traverse entries before the
// target subtree is touched, ordered root-first. It walks parents upward
// from target until root, then appends root itself; whenever target differs
// from root, root is therefore both the last parent visited and the appended
// element, and receives the (idempotent) traverse merge twice. When target
// equals root the chain is exactly [root].
func Chain(pair PathPair) []string {
	var parents []string
	for dir := pair.Target; dir != pair.Root; {
		dir = filepath.Dir(dir)
		parents = append(parents, dir)
	}
	parents = append(parents, pair.Root)
	for i, j := 0, len(parents)-1; i < j; i, j = i+1, j-1 {
		parents[i], parents[j] = parents[j], parents[i]
	}
	return parents
}
