// Package io reads and writes kirigami patterns: the depth grid a sheet is
// cut from, together with its base plane depth.
//
// # Formats
//
// JSON and TOML share the same keys. Depths are column-major, one inner
// array per column, top row first:
//
//	{
//	  "name": "voxel",
//	  "base_plane_depth": 2,
//	  "depths": [[0, 0], [1, 0], [0, 0]]
//	}
//
//	name = "voxel"
//	base_plane_depth = 2
//	depths = [[0, 0], [1, 0], [0, 0]]
//
// CSV holds the picture as it looks: one record per row, one field per
// column. It is transposed to column-major on read. CSV carries no base
// plane depth; callers supply it (see [Pattern.WithBasePlaneDepth]).
//
//	0,1,0
//	0,0,0
//
// # Import
//
// [Import] picks a reader from the file extension (.json, .toml, .csv).
// The Read* functions accept any io.Reader and do not close it.
//
// Readers check the shape of the document only; depth ranges and the
// rectangle constraint are enforced by [Pattern.Configuration], which
// returns the INVALID_* errors of [kirigami.FromDepths].
//
// # Export
//
// [WriteJSON] and [ExportJSON] write a pattern back out so that it can be
// re-imported unchanged.
package io
