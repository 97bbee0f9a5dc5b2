// Package estimate orchestrates pseudo-Cl bandpower estimation from masked
// sky maps.
//
// The pipeline loads masks and maps, optionally smooths the masks, builds
// fields, expands a bin specification into a per-multipole bandpower table,
// resolves the mode-coupling workspace (from a cache file or by computing
// it), decouples the measured spectrum and writes the result:
//
//	report, err := estimate.Run(ctx, estimate.Params{
//		Mask1:       "mask.txt",
//		Map1:        "map.txt",
//		FWHM1:       estimate.SmoothingDisabled,
//		Correlation: estimate.CorrAuto,
//		Nside:       64,
//		BinsPath:    "bins.txt",
//		Workspace:   estimate.WorkspaceCache{Path: "ws.bin", Save: true},
//		Method:      estimate.MethodStep,
//		OutputPath:  "cl.dat",
//	}, estimate.WithLogger(logger))
//
// # Bin Specification
//
// A bin specification is a two-column integer table of inclusive
// [lmin, lmax] rows. Every multipole of a row gets weight 1/width and the
// row's ordinal as bandpower index. Multipoles between rows are
// [Unassigned] and carry zero weight.
//
// # Workspace Cache
//
// The coupling matrix depends only on the masks and the binning. When a
// cache path is configured and the file exists, the workspace is loaded
// instead of computed. Cached workspaces carry a fingerprint of the
// resolution, binning and mask spectrum; a mismatching file is treated as
// stale and recomputed.
//
// # Methods
//
// [MethodFull] decouples in a single engine call, [MethodStep] computes the
// coupled spectrum first and then decouples it with the workspace. Both
// produce identical bandpowers.
package estimate
