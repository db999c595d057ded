// Package kirigami turns a height field of voxel columns into the cut and
// fold lines of a stepped kirigami sheet.
//
// # Overview
//
// The input is a dense grid of non-negative integer depths indexed
// [column][row]. Each column is flattened independently into a sequence of
// unit facets ([Facetize]); a facet is either a riser ([Upward]) or a tread
// ([Face]) and carries the depth at which it sits. The flattened sheet is
// BasePlaneDepth + BackgroundPlaneHeight cells tall: the first rows form the
// support that folds down behind the picture, the remaining rows come from
// the input depths.
//
// Lines are derived by two scans over the facet grid:
//
//   - The cross-column scan compares facets side by side with [Compare] and
//     emits a vertical [Cut] wherever neighbouring cells differ.
//   - The within-column scan walks each column top to bottom and classifies
//     every horizontal edge as a [MountainFold], a [ValleyFold], a [Cut], or
//     nothing, tracking how much support depth is left under the current facet.
//
// # Usage
//
//	cfg, err := kirigami.FromDepths([][]int{{0, 0}, {1, 0}, {0, 0}}, 2)
//	if err != nil {
//	    return err
//	}
//	for line := range cfg.Lines() {
//	    fmt.Println(line.Start, line.End)
//	}
//
// Lines are produced in a deterministic order: every cross-column pair first,
// then every column. Callers that need a canonical order should use
// [SortLines].
//
// # Errors
//
// [FromDepths] reports malformed input with an INVALID_* code from
// [github.com/matzehuels/kirigami/pkg/errors]. A facet grid that breaks the
// support-depth invariant yields INTERNAL_ERROR; it cannot be produced from
// validated input.
//
// # Concurrency
//
// A [Configuration] is immutable once built and safe for concurrent readers.
// [Configuration.CollectLinesConcurrent] scans columns in parallel and
// returns the same lines in the same order as [Configuration.Lines].
package kirigami
