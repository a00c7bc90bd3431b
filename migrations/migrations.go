// Package migrations carries the schema files applied at boot, in
// lexical order.
package migrations

import "embed"

//go:embed *.up.sql
var Files embed.FS
