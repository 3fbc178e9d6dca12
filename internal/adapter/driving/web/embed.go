package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet, csrf.js, app.js).
//
//go:embed static/*
var StaticFS embed.FS
