// Package master implements the pseudo-Cl (MASTER) estimator for scalar
// fields on the sphere.
//
// A masked sky map has a measured ("coupled") angular power spectrum that
// mixes multipoles of the true spectrum through the mask. The mixing is
// described by the mode-coupling matrix, which depends only on the masks and
// not on the map values. MASTER bins the coupling matrix into bandpowers,
// inverts it, and applies it to the binned coupled spectrum to obtain
// decoupled bandpower estimates.
//
// # Usage
//
// Build fields from masks and maps, a binning, and a workspace:
//
//	f1, err := master.NewField(mask1, map1)
//	f2, err := master.NewField(mask2, map2)
//	b, err := master.NewBins(nside, ells, weights, bandpowers)
//	ws, err := master.ComputeWorkspace(f1, f2, b)
//
// Then decouple either explicitly or in one call:
//
//	coupled, err := master.CoupledCell(f1, f2)
//	cl, err := ws.DecoupleCell(coupled)
//
//	cl, err := master.ComputeFullMaster(f1, f2, b, ws)
//
// Workspaces are expensive and can be persisted with [Workspace.WriteFile]
// and restored with [ReadWorkspaceFile]. A workspace carries a fingerprint of
// the resolution, binning and mask spectrum it was computed for, see
// [WorkspaceFingerprint].
package master
