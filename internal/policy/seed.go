package policy

import (
	"thispc/internal/folders"
	"thispc/internal/store"
)

// SeedTree is the layout a stock Windows install exposes for the managed
// folders: the description keys with their names, no policy values, and the
// 3D Objects namespace key present.
func SeedTree() store.Tree {
	t := store.Tree{
		folders.BasePath:      {},
		folders.CompanionPath: {},
	}
	for _, it := range folders.List() {
		t[it.NamePath()] = map[string]string{folders.NameValue: it.Label}
	}
	return t
}
