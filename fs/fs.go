// Package fs embeds the files the binaries ship with.
package fs

import "embed"

// Templates holds the HTML views; files starting with "_" are layouts.
//
//go:embed templates/*.gohtml
var Templates embed.FS
