package migrations

import "embed"

// SQL holds the versioned schema files applied at startup, lowest
// version number first.
//
//go:embed *.sql
var SQL embed.FS
