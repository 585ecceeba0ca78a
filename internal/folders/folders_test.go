package folders

import "testing"

func TestListOrderAndShape(t *testing.T) {
	items := List()
	if len(items) != 7 {
		t.Fatalf("got %d items want 7", len(items))
	}
	if items[0].ID != CompanionID || !items[0].IsCompanion() {
		t.Fatalf("first item should be the 3D Objects companion item, got %q", items[0].ID)
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
	wantAliases := []string{"3d-objects", "desktop", "documents", "downloads", "music", "pictures", "videos"}
	for i, a := range Aliases() {
		if a != wantAliases[i] {
			t.Fatalf("alias %d: got %q want %q", i, a, wantAliases[i])
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	items := List()
	items[0].ID = "mutated"
	if List()[0].ID != CompanionID {
		t.Fatalf("List must not expose the backing slice")
	}
}

func TestPaths(t *testing.T) {
	it, ok := Lookup("desktop")
	if !ok {
		t.Fatalf("desktop not found")
	}
	if got := it.PolicyPath(); got != "Explorer/FolderDescriptions/{B4BFCC3A-DB2C-424C-B029-7FE99A87C641}/PropertyBag" {
		t.Fatalf("policy path: %s", got)
	}
	if got := it.NamePath(); got != "Explorer/FolderDescriptions/{B4BFCC3A-DB2C-424C-B029-7FE99A87C641}" {
		t.Fatalf("name path: %s", got)
	}
}

func TestLookup(t *testing.T) {
	cases := map[string]string{
		"Music": "{a0c69a99-21c8-4671-8703-7934162fcf1d}",
		"{A0C69A99-21C8-4671-8703-7934162FCF1D}": "{a0c69a99-21c8-4671-8703-7934162fcf1d}",
		"31c0dd25-9439-4f12-bf41-7ff4eda38722":   CompanionID,
	}
	for key, want := range cases {
		it, ok := Lookup(key)
		if !ok || it.ID != want {
			t.Fatalf("Lookup(%q) = %q, %v; want %q", key, it.ID, ok, want)
		}
	}
	if _, ok := Lookup("recycle-bin"); ok {
		t.Fatalf("unmanaged alias resolved")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("empty key resolved")
	}
}
