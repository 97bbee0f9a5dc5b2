package master

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

var workspaceMagic = [8]byte{'P', 'C', 'L', 'W', 'S', 'P', '0', '1'}

// Size limits applied to a workspace header before anything is allocated.
// Excluded multipoles may lie above 3*nside-1, so the record count is only
// bounded by the pixel count.
const (
	maxStoredNside = 1 << 13
	maxStoredBands = 1 << 12
)

// workspaceHeader is the fixed-size prefix of a serialized workspace.
type workspaceHeader struct {
	Magic       [8]byte
	Nside       uint32
	NumElls     uint32
	NumBands    uint32
	Fingerprint uint64
}

// WriteTo serializes the workspace in a little-endian binary layout:
// header, per-multipole (ell int32, weight float64, bandpower int32),
// then the row-major binned coupling matrix.
func (w *Workspace) WriteTo(dst io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(dst)}
	b := w.bins

	hdr := workspaceHeader{
		Magic:       workspaceMagic,
		Nside:       uint32(b.nside),
		NumElls:     uint32(len(b.ells)),
		NumBands:    uint32(b.Count()),
		Fingerprint: w.fingerprint,
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return cw.n, fmt.Errorf("master: write workspace header: %w", err)
	}

	for i := range b.ells {
		rec := struct {
			Ell    int32
			Weight float64
			Band   int32
		}{int32(b.ells[i]), b.weights[i], int32(b.bpws[i])}
		if err := binary.Write(cw, binary.LittleEndian, rec); err != nil {
			return cw.n, fmt.Errorf("master: write workspace bins: %w", err)
		}
	}

	if err := binary.Write(cw, binary.LittleEndian, w.coupling.RawMatrix().Data); err != nil {
		return cw.n, fmt.Errorf("master: write coupling matrix: %w", err)
	}

	if err := cw.w.Flush(); err != nil {
		return cw.n, fmt.Errorf("master: flush workspace: %w", err)
	}
	return cw.n, nil
}

// WriteFile serializes the workspace to path, replacing any existing file.
func (w *Workspace) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadWorkspace deserializes a workspace written by [Workspace.WriteTo].
func ReadWorkspace(src io.Reader) (*Workspace, error) {
	r := bufio.NewReader(src)

	var hdr workspaceHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorruptWorkspace, err)
	}
	if hdr.Magic != workspaceMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptWorkspace, hdr.Magic[:])
	}
	if hdr.NumBands == 0 || hdr.NumBands > maxStoredBands || hdr.NumElls < hdr.NumBands {
		return nil, fmt.Errorf("%w: %d bandpowers over %d multipoles", ErrCorruptWorkspace, hdr.NumBands, hdr.NumElls)
	}
	if hdr.Nside == 0 || hdr.Nside > maxStoredNside {
		return nil, fmt.Errorf("%w: nside %d", ErrCorruptWorkspace, hdr.Nside)
	}
	if uint64(hdr.NumElls) > 12*uint64(hdr.Nside) {
		return nil, fmt.Errorf("%w: %d multipoles for nside %d", ErrCorruptWorkspace, hdr.NumElls, hdr.Nside)
	}

	ells := make([]int, hdr.NumElls)
	weights := make([]float64, hdr.NumElls)
	bpws := make([]int, hdr.NumElls)
	for i := range ells {
		var rec struct {
			Ell    int32
			Weight float64
			Band   int32
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%w: bins: %v", ErrCorruptWorkspace, err)
		}
		ells[i] = int(rec.Ell)
		weights[i] = rec.Weight
		bpws[i] = int(rec.Band)
	}

	b, err := newBins(int(hdr.Nside), ells, weights, bpws, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptWorkspace, err)
	}
	n := int(hdr.NumBands)
	if b.Count() != n {
		return nil, fmt.Errorf("%w: header declares %d bandpowers, bins have %d", ErrCorruptWorkspace, n, b.Count())
	}

	data := make([]float64, n*n)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: coupling matrix: %v", ErrCorruptWorkspace, err)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite coupling entry %d", ErrCorruptWorkspace, i)
		}
	}

	return newWorkspace(b, mat.NewDense(n, n, data), hdr.Fingerprint)
}

// ReadWorkspaceFile reads a workspace from path.
func ReadWorkspaceFile(path string) (*Workspace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorkspace(f)
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
