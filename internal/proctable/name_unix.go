//go:build unix

package proctable

func nameMatches(entryName, want string) bool {
	if want == "" {
		return false
	}
	return entryName == truncateName(want, commLimit)
}
