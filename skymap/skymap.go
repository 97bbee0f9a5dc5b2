package skymap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-pcl/healpix"
)

// Errors returned by map readers.
var (
	ErrEmptyMap      = errors.New("skymap: map has no values")
	ErrNsideMismatch = errors.New("skymap: map resolution does not match requested nside")
	ErrTrailingBytes = errors.New("skymap: binary map length is not a multiple of 8")
)

// Format selects an on-disk layout.
type Format int

const (
	FormatText Format = iota
	FormatBinary
)

// FormatFor returns the layout implied by the extension of path.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".f64", ".raw":
		return FormatBinary
	default:
		return FormatText
	}
}

// Read loads a map from path and validates its pixel count.
func Read(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m []float64
	switch FormatFor(path) {
	case FormatBinary:
		m, err = ReadBinary(f)
	default:
		m, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := healpix.NsideFromNpix(len(m)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadNside loads a map from path and checks that its resolution is nside.
func ReadNside(path string, nside int) ([]float64, error) {
	m, err := Read(path)
	if err != nil {
		return nil, err
	}
	if want := healpix.NpixFromNside(nside); len(m) != want {
		got, _ := healpix.NsideFromNpix(len(m))
		return nil, fmt.Errorf("%s: %w: %d != %d", path, ErrNsideMismatch, got, nside)
	}
	return m, nil
}

// ReadText parses whitespace-delimited float values.
func ReadText(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("skymap: line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyMap
	}
	return out, nil
}

// ReadBinary decodes raw little-endian float64 values.
func ReadBinary(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyMap
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(data))
	}
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return out, nil
}

// Write stores m at path in the layout implied by its extension,
// replacing any existing file.
func Write(path string, m []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch FormatFor(path) {
	case FormatBinary:
		err = WriteBinary(f, m)
	default:
		err = WriteText(f, m)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// WriteText writes one value per line with full float64 precision.
func WriteText(w io.Writer, m []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range m {
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteBinary writes raw little-endian float64 values.
func WriteBinary(w io.Writer, m []float64) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, m); err != nil {
		return err
	}
	return bw.Flush()
}
