// Package project holds the state of the project form: framework, PHP
// version, metadata, optional features and the selected dependencies.
//
// A [Config] starts from [Default] and is edited through its methods, which
// keep it consistent: the dependency [Selection] never holds duplicates, and
// switching frameworks drops features the new framework does not offer.
// Selected dependencies are kept across framework switches.
//
// Configs can be loaded from TOML presets with [LoadPreset].
package project
