// Package catalogs provides the widget catalog embedded at build time.
package catalogs

import _ "embed"

// WidgetsJSON is the bundled widget catalog.
//
//go:embed widgets/catalog.json
var WidgetsJSON []byte
