package assets

// TemplateLoader loads invoice templates by bundled name.
// Implementations may load from embedded assets, a directory on disk, etc.
type TemplateLoader interface {
	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name is not alphanumeric.
	LoadTemplate(name string) (string, error)
}
