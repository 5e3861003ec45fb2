// Package appfs embeds the files shipped with the binaries: SQL migrations and templates.
package appfs

import "embed"

// explicit globs so that "_" prefixed partials are embedded too
//go:embed migrations/*.sql templates/*.html templates/pages/*.html templates/email/*
var FS embed.FS
