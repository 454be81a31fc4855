package assets

import "path"

// DefaultTemplateName is the bundled template used when none is requested.
const DefaultTemplateName = "default"

// bundledDir is the directory bundled templates live in, both inside the
// embedded filesystem and in reported locations.
const bundledDir = "templates"

// Location identifies where a template's markup comes from.
type Location struct {
	Name    string // bundled template name; empty for path locations
	Path    string // bundled path ("templates/<name>.html") or filesystem path
	Bundled bool
}

// String returns the location path.
func (l Location) String() string {
	return l.Path
}

// ResolveLocation maps a template identifier to its location. An empty id
// resolves to the default template; an alphanumeric id names a bundled
// template; any other string is returned unchanged as a filesystem path.
func ResolveLocation(id string) Location {
	if id == "" {
		id = DefaultTemplateName
	}

	if !IsTemplateName(id) {
		return Location{Path: id}
	}

	return Location{Name: id, Path: bundledPath(id), Bundled: true}
}

func bundledPath(name string) string {
	return path.Join(bundledDir, name+".html")
}
