package estimate

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteSpectrumTo writes three whitespace-delimited columns (effective
// multipole, power, half bin width) after a header comment.
func WriteSpectrumTo(w io.Writer, s Spectrum, spec BinSpec) error {
	if err := checkLengths(s, spec); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# ell   cl   xerr"); err != nil {
		return err
	}
	for i, xerr := range spec.HalfWidths() {
		if _, err := fmt.Fprintf(bw, "%.18e %.18e %.18e\n", s.Ell[i], s.Cl[i], xerr); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSpectrum writes s to path, replacing any existing file. The error
// column is recomputed from the bin specification at binsPath.
func WriteSpectrum(path string, s Spectrum, binsPath string) error {
	spec, err := LoadBinSpec(binsPath)
	if err != nil {
		return err
	}

	if err := checkLengths(s, spec); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSpectrumTo(f, s, spec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func checkLengths(s Spectrum, spec BinSpec) error {
	if len(s.Ell) != len(s.Cl) || len(s.Cl) != len(spec) {
		return fmt.Errorf("%w: ell %d, cl %d, bins %d", ErrLengthMismatch, len(s.Ell), len(s.Cl), len(spec))
	}
	return nil
}
