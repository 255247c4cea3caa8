// Package db provides the embedded catalog seed data.
package db

import _ "embed"

// SeedProducts is the default product catalog, used by the seed tool when no
// products file is given.
//
//go:embed seed/products.json
var SeedProducts []byte
