// Package migrations embeds the database schema so services can apply it at
// start-up.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
