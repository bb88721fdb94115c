package flow

// Library is one entry of the closed set of patchable libraries.
type Library struct {
	Key   string // callback token, e.g. "ue4"
	Title string // button label
	File  string // shared object name embedded in templates
}

var libraries = []Library{
	{Key: "ue4", Title: "UE4", File: "libUE4.so"},
	{Key: "anogs", Title: "Anogs", File: "libanogs.so"},
	{Key: "anort", Title: "Anort", File: "libanort.so"},
}

// Libraries returns the selectable library set in display order.
func Libraries() []Library {
	out := make([]Library, len(libraries))
	copy(out, libraries)
	return out
}

// LibraryByKey resolves a callback token to a library.
func LibraryByKey(key string) (Library, bool) {
	for _, lib := range libraries {
		if lib.Key == key {
			return lib, true
		}
	}
	return Library{}, false
}
