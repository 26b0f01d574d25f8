// Package migrations embeds the versioned SQL schema migrations so the
// binary carries its own schema history.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
