package folders

import "strings"

const (
	BasePath      = "Explorer/FolderDescriptions"
	PolicyValue   = "ThisPCPolicy"
	NameValue     = "Name"
	Show          = "Show"
	Hide          = "Hide"
	CompanionID   = "{31C0DD25-9439-4F12-BF41-7FF4EDA38722}"
	CompanionPath = "Explorer/MyComputer/NameSpace/{0DB7E03F-FC29-4DC6-9020-FF41B59E513A}"
)

type Item struct {
	ID    string
	Alias string
	Label string
}

// NamePath is the key holding the OS-owned "Name" value for the folder.
func (it Item) NamePath() string {
	return BasePath + "/" + it.ID
}

func (it Item) PolicyPath() string {
	return it.NamePath() + "/PropertyBag"
}

func (it Item) IsCompanion() bool {
	return strings.EqualFold(it.ID, CompanionID)
}

var managed = []Item{
	{ID: CompanionID, Alias: "3d-objects", Label: "3D Objects"},
	{ID: "{B4BFCC3A-DB2C-424C-B029-7FE99A87C641}", Alias: "desktop", Label: "Desktop"},
	{ID: "{f42ee2d3-909f-4907-8871-4c22fc0bf756}", Alias: "documents", Label: "Documents"},
	{ID: "{7d83ee9b-2244-4e70-b1f5-5393042af1e4}", Alias: "downloads", Label: "Downloads"},
	{ID: "{a0c69a99-21c8-4671-8703-7934162fcf1d}", Alias: "music", Label: "Music"},
	{ID: "{0ddd015d-b06c-45d5-8c4c-f59713854639}", Alias: "pictures", Label: "Pictures"},
	{ID: "{35286a68-3c57-41a1-bbb1-0eae73d76c95}", Alias: "videos", Label: "Videos"},
}

// List returns the managed folders in display order.
func List() []Item {
	out := make([]Item, len(managed))
	copy(out, managed)
	return out
}

// Lookup resolves an alias or a folder id. Ids match case-insensitively and
// the surrounding braces are optional.
func Lookup(key string) (Item, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Item{}, false
	}
	bare := strings.TrimSuffix(strings.TrimPrefix(key, "{"), "}")
	for _, it := range managed {
		if strings.EqualFold(it.Alias, key) || strings.EqualFold(strings.Trim(it.ID, "{}"), bare) {
			return it, true
		}
	}
	return Item{}, false
}

func IsManaged(id string) bool {
	for _, it := range managed {
		if it.ID == id {
			return true
		}
	}
	return false
}

func Aliases() []string {
	out := make([]string, 0, len(managed))
	for _, it := range managed {
		out = append(out, it.Alias)
	}
	return out
}
