// Package assets embeds the static files the game ships with: the help
// screen and the sqlite migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed help.txt sql/*.sql
var FS embed.FS

// Help returns the "how to play" text.
func Help() string {
	b, err := FS.ReadFile("help.txt")
	if err != nil {
		return ""
	}
	return string(b)
}

// Migrations returns the sql directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
