package assets

// defaultResolver serves bundled assets when no custom directory is configured.
var defaultResolver = &AssetResolver{embedded: NewEmbeddedLoader()}

// Load reads the template at loc using bundled assets only.
func Load(loc Location) (string, error) {
	return defaultResolver.Load(loc)
}

// LoadSchema loads a bundled CUE schema by name.
func LoadSchema(name string) (string, error) {
	return defaultResolver.LoadSchema(name)
}

// BundledTemplates lists the names of the templates compiled into the binary.
func BundledTemplates() []string {
	entries, err := templates.ReadDir(bundledDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(".html")])
	}
	return names
}
