// Package preview serves the static project preview for each framework.
//
// A [Preview] bundles three literal blobs: the directory tree of a fresh
// project, its composer.json, and the main controller stub together with the
// path the stub lives at. The blobs are embedded at build time and never
// rendered from the form state; "my-app" and "My PHP application" in them are
// part of the literal text.
//
// The files tab also exposes the composer requirements as a [Manifest] and
// can draw them as a Graphviz graph with [ToDOT] and [RenderSVG].
package preview
