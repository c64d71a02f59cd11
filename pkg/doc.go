// Package pkg provides the libraries behind the exhibit gallery engine.
//
// # Overview
//
// An exhibit shows a catalog of artworks on a screen divided into named
// regions. Focus cycles between the regions on its own; a visitor who clicks
// a region or navigates takes over, and the cycle resumes after a quiet
// period. The pkg directory is organized leaf-first:
//
//  1. [errors] - Coded errors shared by every package
//  2. [layout] - Fractional regions, pixel bounds and hit testing
//  3. [catalog] - Artworks, critiques and personas; file, HTTP and MongoDB loaders
//  4. [navigation] - Circular cursor over the artworks with change listeners
//  5. [autoplay] - Timed focus cycle and prominence easing across regions
//  6. [exhibit] - The App that wires the above together, plus a headless loop
//  7. [server] - HTTP control API over a running App
//
// Supporting packages: [config] (TOML exhibit files), [cache] (file and Redis
// caches for remote catalogs), [session] (registry of running exhibits), [httputil]
// (retries), [observability] (hooks) and [buildinfo] (version metadata).
//
// # Data Flow
//
//	catalog source (file, URL, mongodb://)
//	         ↓
//	    [catalog] Loader → [navigation] State
//	         ↓
//	    host clock → [exhibit] App.Tick → idle check → [autoplay] Update
//	         ↓
//	    [layout] surfaces carry prominence → renderer
//
// # Quick Start
//
//	cat, _ := catalog.Decode(data, catalog.FormatTOML)
//	app, _ := exhibit.New(cat, exhibit.Options{
//	    Width:   1920,
//	    Height:  1080,
//	    Regions: config.Default().RegionDefs(),
//	})
//	defer app.Close()
//
//	for range time.Tick(33 * time.Millisecond) {
//	    _ = app.Tick(33 * time.Millisecond)
//	    render(app.Status())
//	}
//
// The core packages are single-threaded. Hosts serialize access, either
// through their own event loop or through [exhibit.Loop].
package pkg
