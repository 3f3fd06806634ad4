// Package pkg provides the libraries behind phpgen, a PHP framework project
// generator.
//
// # Overview
//
// phpgen lets a user pick one of five PHP frameworks, a PHP version, project
// metadata and Composer dependencies, then previews the project that would be
// generated. The CLI, the terminal form and the web UI in internal/ are thin
// layers over these packages.
//
// # Architecture
//
// The typical data flow through phpgen:
//
//	[catalog] frameworks, categories, search
//	         ↓
//	[project] form state (Config, Selection, features, presets)
//	         ↓
//	[session] per-user form state stored in a [cache] backend
//	         ↓
//	[preview] structure, composer.json and main file per framework
//	         ↓
//	[generate] validated placeholder result
//
// # Quick Start
//
//	cfg := project.Default()
//	_ = cfg.SetFramework("symfony")
//	_, _ = cfg.AddDependency("api-platform/core")
//
//	p, _ := preview.For(cfg.Framework)
//	fmt.Println(p.Structure)
//
//	res, err := generate.Generate(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Message)
//
// # Main Packages
//
// ## Domain
//
// [catalog] - The compiled-in framework and dependency catalog. Immutable;
// accessors return copies.
//
// [project] - Project form state: defaults, PHP versions, the ordered
// dependency [project.Selection], optional features and TOML presets.
//
// [preview] - Static preview blobs per framework and the composer
// requirement graph rendered with Graphviz.
//
// [generate] - Validates a form and acknowledges it. Nothing is written.
//
// ## Infrastructure
//
// [cache] - Key/value caches with TTL: memory, file, Redis and a no-op
// cache, plus key scoping and instrumentation.
//
// [session] - Browser and terminal form sessions stored in a cache.
//
// [integrations] - HTTP client helpers and the Packagist metadata client
// used by "phpgen deps info".
//
// [observability] - Hooks for catalog searches, cache traffic, outgoing
// HTTP and generation. No-ops by default.
//
// ## Shared
//
// [errors] - Coded errors shared by the CLI, web UI and JSON API.
//
// [buildinfo] - Version information injected at build time.
package pkg
