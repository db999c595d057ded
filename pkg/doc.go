// Package pkg holds the kirigami libraries.
//
//  1. [kirigami] - facets, the facetizer and the line scan
//  2. [io] - pattern files (JSON, TOML, CSV)
//  3. [render] - SVG, JSON, PDF and PNG sinks
//  4. [cache] - artifact caching (files, Redis)
//  5. [pipeline] - load → facetize → render orchestration
//  6. [errors] - coded errors shared by every layer
//
// The data flow:
//
//	depth grid (JSON/TOML/CSV)
//	         ↓
//	    [io] Pattern
//	         ↓
//	    [kirigami] Configuration (facet grid)
//	         ↓
//	    Lines() → cut, mountain and valley segments
//	         ↓
//	    [render/sink] SVG/JSON/PDF/PNG
package pkg
