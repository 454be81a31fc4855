// Package assets provides the invoice templates and data schemas consumed by
// the generation pipeline.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - bundled templates and schemas (go:embed)
//	    ├── FilesystemLoader  - templates from a custom directory on disk
//	    └── AssetResolver     - custom-first lookup with embedded fallback
//
// # Template Identifiers
//
// ResolveLocation maps a template identifier to a Location. Identifiers made
// only of ASCII letters and digits name a bundled template ("default",
// "minimal"); anything else is used verbatim as a filesystem path:
//
//	ResolveLocation("")                -> templates/default.html (bundled)
//	ResolveLocation("minimal")         -> templates/minimal.html (bundled)
//	ResolveLocation("./my/invoice.html") -> ./my/invoice.html   (path)
//
// # Directory Structure
//
// A custom template directory overrides bundled templates by name:
//
//	{basePath}/
//	└── {name}.html
//
// # Security
//
// Template names are validated before use. FilesystemLoader resolves symlinks
// and verifies paths stay within basePath.
package assets
