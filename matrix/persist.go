// SPDX-License-Identifier: MIT

// Package matrix - persistence (binary) and text I/O.
//
// Binary layout (no version tag, no checksum), native byte order:
//
//	[rows uint64][cols uint64][rows*cols float64, row-major]
//
// Text layout: one row per line, values separated by spaces or tabs, written
// as "% -8e\t". Lines beginning with '#' and empty lines are skipped on read.
//
// Save/Load/ReadText treat I/O and format errors as fatal; WriteBinary and
// ReadBinary are the checked equivalents for callers that want an error.

package matrix

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

const (
	opSave      = "matrix.Save"
	opLoad      = "matrix.Load"
	opReadText  = "matrix.ReadText"
	opWriteText = "matrix.WriteText"

	// loadChunk bounds the allocation made before payload bytes are seen,
	// so a corrupt header cannot request a huge buffer up front.
	loadChunk = 1 << 16

	textCommentPrefix = '#'
	textFormat        = "% -8e\t"
	textMaxLine       = 1 << 20
)

// WriteBinary encodes m in the binary layout.
//
// Complexity:
//   - Time O(r*c), Space O(1) extra.
func (m *Dense) WriteBinary(w io.Writer) error {
	hdr := [2]uint64{uint64(m.r), uint64(m.c)}
	if err := binary.Write(w, binary.NativeEndian, hdr[:]); err != nil {
		return err
	}

	return binary.Write(w, binary.NativeEndian, m.data)
}

// ReadBinary decodes one matrix in the binary layout.
//
// Errors:
//   - ErrShortRead when the header or payload ends early.
//   - ErrBadHeader when the header describes an empty or unrepresentable shape.
func ReadBinary(r io.Reader) (*Dense, error) {
	var hdr [2]uint64
	if err := binary.Read(r, binary.NativeEndian, hdr[:]); err != nil {
		return nil, shortRead(err)
	}
	if hdr[0] == 0 || hdr[1] == 0 || hdr[0] > math.MaxInt || hdr[1] > math.MaxInt {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadHeader, hdr[0], hdr[1])
	}
	rows, cols := int(hdr[0]), int(hdr[1])
	if err := checkShape(rows, cols); err != nil {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadHeader, rows, cols)
	}

	total := rows * cols
	data := make([]float64, 0, min(total, loadChunk))
	for len(data) < total {
		n := min(total-len(data), loadChunk)
		buf := make([]float64, n)
		if err := binary.Read(r, binary.NativeEndian, buf); err != nil {
			return nil, shortRead(err)
		}
		data = append(data, buf...)
	}

	m := newDense(rows, cols, defaultOptions())
	m.data = data

	return m, nil
}

func shortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrShortRead, err)
	}

	return err
}

// Save writes m to path in the binary layout. Any failure is fatal.
func Save(m *Dense, path string) {
	f, err := os.Create(path)
	if err != nil {
		fault.Fatal(opSave, fault.StatusGeneric, err)
		return
	}
	bw := bufio.NewWriter(f)
	err = m.WriteBinary(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	fault.Check(opSave, err)
}

// Load reads a matrix written by Save. A short or malformed file is fatal.
func Load(path string) *Dense {
	f, err := os.Open(path)
	if err != nil {
		fault.Fatal(opLoad, fault.StatusGeneric, err)
		return nil
	}
	defer f.Close()

	m, err := ReadBinary(bufio.NewReader(f))
	if err != nil {
		fault.Fatal(opLoad, fault.StatusGeneric, fmt.Errorf("%s: %w", path, err))
		return nil
	}

	return m
}

// ReadText allocates a rows×cols matrix and fills it from r (see
// (*Dense).ReadText). Invalid shapes and read errors are fatal.
func ReadText(r io.Reader, rows, cols int) *Dense {
	m := Alloc(rows, cols, true)
	fault.Check(opReadText, m.ReadText(r))

	return m
}

// ReadText fills m from text rows.
//
// Implementation:
//   - Stage 1: scan lines; skip empty lines and lines starting with '#'.
//   - Stage 2: split each data line on spaces/tabs; token q sets column q.
//
// Behavior highlights:
//   - A missing token leaves that cell's previous value unchanged.
//   - Tokens parse like C atof: the longest numeric prefix, 0 when none.
//   - Fewer data lines than rows is not an error; extra lines are ignored.
//
// Errors:
//   - Only errors from the underlying reader (including over-long lines).
func (m *Dense) ReadText(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), textMaxLine)

	p := 0
	for p < m.r && sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if len(line) == 0 || line[0] == textCommentPrefix {
			continue
		}
		tokens := strings.FieldsFunc(line, func(c rune) bool { return c == ' ' || c == '\t' })
		for q := 0; q < m.c && q < len(tokens); q++ {
			m.data[p*m.c+q] = atof(tokens[q])
		}
		p++
	}

	return sc.Err()
}

// atof mimics C atof: parse the longest valid prefix, 0 when none parses.
func atof(s string) float64 {
	for end := len(s); end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v
		}
	}

	return 0
}

// WriteText writes the leading min(rows, m.Rows()) × min(cols, m.Cols())
// block, one row per line, each value as "% -8e\t". Write errors are fatal.
func (m *Dense) WriteText(w io.Writer, rows, cols int) {
	bw := bufio.NewWriter(w)
	pMax, qMax := min(rows, m.r), min(cols, m.c)
	for p := 0; p < pMax; p++ {
		for q := 0; q < qMax; q++ {
			fmt.Fprintf(bw, textFormat, m.data[p*m.c+q])
		}
		bw.WriteByte('\n')
	}
	fault.Check(opWriteText, bw.Flush())
}
