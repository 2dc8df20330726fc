// Package migrations embeds the goose SQL migrations so they can be applied
// without shipping the files alongside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
