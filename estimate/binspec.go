package estimate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Interval is one inclusive [LMin, LMax] multipole range.
type Interval struct {
	LMin int
	LMax int
}

// Width returns the number of multipoles in the interval.
func (iv Interval) Width() int { return iv.LMax - iv.LMin + 1 }

// HalfWidth returns half the interval width, used as the multipole error bar.
func (iv Interval) HalfWidth() float64 { return float64(iv.Width()) / 2 }

// BinSpec is an ordered list of non-overlapping, ascending intervals.
type BinSpec []Interval

// LMin returns the first multipole of the specification.
func (s BinSpec) LMin() int { return s[0].LMin }

// LMax returns the last multipole of the specification.
func (s BinSpec) LMax() int { return s[len(s)-1].LMax }

// HalfWidths returns the half width of every interval.
func (s BinSpec) HalfWidths() []float64 {
	out := make([]float64, len(s))
	for i, iv := range s {
		out[i] = iv.HalfWidth()
	}
	return out
}

// Validate checks that every interval satisfies 0 <= LMin <= LMax and that
// intervals ascend without overlapping. Gaps are allowed.
func (s BinSpec) Validate() error {
	if len(s) == 0 {
		return ErrEmptyBinSpec
	}
	for i, iv := range s {
		if iv.LMin < 0 {
			return fmt.Errorf("%w: row %d: lmin must be >= 0: %d", ErrMalformedBinSpec, i, iv.LMin)
		}
		if iv.LMin > iv.LMax {
			return fmt.Errorf("%w: row %d: [%d, %d]", ErrInvertedBin, i, iv.LMin, iv.LMax)
		}
		if i > 0 && iv.LMin <= s[i-1].LMax {
			return fmt.Errorf("%w: row %d starts at %d, previous ends at %d", ErrOverlappingBins, i, iv.LMin, s[i-1].LMax)
		}
	}
	return nil
}

// ParseBinSpec reads a whitespace-delimited two-column integer table.
// Blank lines and '#' comments are ignored.
func ParseBinSpec(r io.Reader) (BinSpec, error) {
	var spec BinSpec
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want 2 columns, got %d", ErrMalformedBinSpec, line, len(fields))
		}
		lmin, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedBinSpec, line, err)
		}
		lmax, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedBinSpec, line, err)
		}
		spec = append(spec, Interval{LMin: lmin, LMax: lmax})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadBinSpec reads a bin specification file.
func LoadBinSpec(path string) (BinSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spec, err := ParseBinSpec(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
