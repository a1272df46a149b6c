// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Reading and writing of Golly's Extended RLE format, described at
// http://golly.sourceforge.net/Help/formats.html#rle
//
// RLE files have Y values increasing downwards, while the tree has Y
// values increasing upwards, so coordinates are reflected over the X axis
// in both directions.

package ndcell

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrMissingHeader reports input with no "x = ..., y = ..." line.
	ErrMissingHeader = errors.New("rle: missing header")

	// ErrDuplicateHeader reports more than one header line.
	ErrDuplicateHeader = errors.New("rle: multiple headers")

	// ErrBadHeader reports a malformed header line.
	ErrBadHeader = errors.New("rle: invalid header")

	// ErrDuplicateCXRLE reports more than one #CXRLE note.
	ErrDuplicateCXRLE = errors.New("rle: multiple CXRLE headers")

	// ErrBadCXRLE reports a malformed #CXRLE note, including a Pos value
	// with the wrong number of components and unknown keys.
	ErrBadCXRLE = errors.New("rle: invalid CXRLE header")

	// ErrBadContent reports a malformed content block, such as an
	// unparsable run count.
	ErrBadContent = errors.New("rle: invalid content")

	// ErrInvalidCellState reports an unrecognized cell token.
	ErrInvalidCellState = errors.New("rle: invalid cell state")

	// ErrCellStateOutOfRange reports a cell token outside the range the
	// caller accepts, such as a multi-state token in a boolean pattern.
	ErrCellStateOutOfRange = errors.New("rle: cell state out of range")
)

// Pattern is a decoded RLE pattern: a 2-D tree plus the header metadata
// that accompanies it.
type Pattern struct {
	// Tree holds the cells.
	Tree *Tree

	// Rule is the automaton rule name, kept opaque and not canonicalized.
	Rule string

	// Generation is the CXRLE Gen value: the number of generations
	// already simulated.
	Generation int64

	// Comments holds the content of "#" note lines, in order of
	// appearance, without the leading "#".
	Comments []string
}

// NewPattern returns an empty 2-D pattern.
func NewPattern() *Pattern {
	return &Pattern{Tree: NewTree(Dim2D)}
}

// cellToken returns the canonical RLE token for a cell state: "." for the
// default state, "A".."X" for 1..24, and a two-character token for
// 25..255.
func cellToken(state Cell) string {
	if state == 0 {
		return "."
	}
	if state >= 25 {
		return string([]byte{'p' + byte(state-1)/24 - 1, 'A' + byte(state-1)%24})
	}
	return string([]byte{'A' + byte(state-1)%24})
}

// cellFromToken decodes a single cell token. "b" and "." are the default
// state, "o" is state 1.
func cellFromToken(s string) (Cell, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty token", ErrInvalidCellState)
	}
	n := -1
	switch c := s[0]; {
	case c == 'b' || c == '.':
		n = 0
	case c == 'o':
		n = 1
	case c >= 'A' && c <= 'X':
		n = int(c-'A') + 1
	case c >= 'p' && c <= 'y':
		if len(s) == 2 && s[1] >= 'A' && s[1] <= 'X' {
			n = (int(c-'p')+1)*24 + int(s[1]-'A') + 1
		}
	}
	switch {
	case n >= 0 && n <= 24 && len(s) == 1:
	case n > 255 && len(s) == 2:
		return 0, fmt.Errorf("%w: %q", ErrCellStateOutOfRange, s)
	case n >= 25 && len(s) == 2:
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellState, s)
	}
	return Cell(n), nil
}

// boolToken returns the RLE token for a boolean cell: "b" for dead, "o"
// for alive.
func boolToken(alive bool) string {
	if alive {
		return "o"
	}
	return "b"
}

// boolFromToken decodes a cell token restricted to the states 0 and 1.
func boolFromToken(s string) (bool, error) {
	state, err := cellFromToken(s)
	if err != nil {
		return false, err
	}
	if state > 1 {
		return false, fmt.Errorf("%w: %q", ErrCellStateOutOfRange, s)
	}
	return state == 1, nil
}

// DecodeRLE parses a Golly RLE or Extended RLE pattern into a 2-D tree.
// All failures are returned as errors; none panic.
func DecodeRLE(text string) (*Pattern, error) {
	var (
		headerSeen bool
		cxrleSeen  bool
		rule       string
		gen        int64
		startPos   = BigOrigin(Dim2D)
		comments   []string
		content    strings.Builder
		done       bool
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case line[0] == '#':
			if done {
				// Notes after ! are ignored.
				continue
			}
			note := line[1:]
			if fields := strings.Fields(note); len(fields) > 0 && fields[0] == "CXRLE" {
				if cxrleSeen {
					return nil, ErrDuplicateCXRLE
				}
				cxrleSeen = true
				if err := parseCXRLE(fields[1:], startPos, &gen); err != nil {
					return nil, err
				}
			} else {
				comments = append(comments, note)
			}
		case !headerSeen:
			var err error
			if rule, err = parseHeader(line); err != nil {
				return nil, err
			}
			headerSeen = true
		case done:
		case strings.ContainsRune(line, '='):
			return nil, ErrDuplicateHeader
		default:
			content.WriteString(line)
			if strings.ContainsRune(line, '!') {
				done = true
			}
		}
	}
	if !headerSeen {
		return nil, ErrMissingHeader
	}

	tree, err := decodeContent(content.String(), startPos)
	if err != nil {
		return nil, err
	}
	return &Pattern{Tree: tree, Rule: rule, Generation: gen, Comments: comments}, nil
}

// parseHeader parses the "x = <int>, y = <int>[, rule = <token>]" line
// and returns the rule name.
func parseHeader(line string) (string, error) {
	var xSeen, ySeen bool
	var rule string
	for _, part := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrBadHeader, line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "x":
			if xSeen {
				return "", fmt.Errorf("%w: duplicate x value", ErrBadHeader)
			}
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return "", fmt.Errorf("%w: x value %q", ErrBadHeader, value)
			}
			xSeen = true
		case "y":
			if ySeen {
				return "", fmt.Errorf("%w: duplicate y value", ErrBadHeader)
			}
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return "", fmt.Errorf("%w: y value %q", ErrBadHeader, value)
			}
			ySeen = true
		case "rule":
			rule = value
		default:
			return "", fmt.Errorf("%w: unknown key %q", ErrBadHeader, key)
		}
	}
	if !xSeen || !ySeen {
		return "", fmt.Errorf("%w: missing x or y value", ErrBadHeader)
	}
	return rule, nil
}

// parseCXRLE parses the key=value pairs of a "#CXRLE" note into pos and
// gen. Recognized keys are Pos (two comma-separated big integers) and Gen
// (a signed integer).
func parseCXRLE(pairs []string, pos BigVec, gen *int64) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: %q", ErrBadCXRLE, pair)
		}
		switch key {
		case "Pos":
			parts := strings.Split(value, ",")
			if len(parts) != len(pos) {
				return fmt.Errorf("%w: Pos %q", ErrBadCXRLE, value)
			}
			for i, part := range parts {
				n, ok := new(big.Int).SetString(part, 10)
				if !ok {
					return fmt.Errorf("%w: Pos %q", ErrBadCXRLE, value)
				}
				pos[i].Set(n)
			}
		case "Gen":
			g, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: Gen %q", ErrBadCXRLE, value)
			}
			*gen = g
		default:
			return fmt.Errorf("%w: unknown key %q", ErrBadCXRLE, key)
		}
	}
	return nil
}

// decodeContent writes the run-length-encoded cell items into a fresh
// tree. startPos is the CXRLE position of the top-left cell in RLE
// coordinates; rows are reflected so that Y increases upwards in the
// tree.
func decodeContent(text string, startPos BigVec) (*Tree, error) {
	tree := NewTree(Dim2D)
	startX := new(big.Int).Set(startPos[X])
	x := new(big.Int).Set(startX)
	y := new(big.Int).Neg(startPos[Y])
	y.Sub(y, bigOne)

	for i := 0; i < len(text); {
		if text[i] == ' ' || text[i] == '\t' {
			i++
			continue
		}
		count := 1
		if text[i] >= '0' && text[i] <= '9' {
			j := i
			for j < len(text) && text[j] >= '0' && text[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(text[i:j])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: count %q", ErrBadContent, text[i:j])
			}
			count = n
			i = j
			for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
				i++
			}
			if i == len(text) {
				return nil, fmt.Errorf("%w: dangling count", ErrBadContent)
			}
		}
		switch c := text[i]; {
		case c == '!':
			return tree, nil
		case c == '$':
			y.Sub(y, big.NewInt(int64(count)))
			x.Set(startX)
			i++
		default:
			token := text[i : i+1]
			if c >= 'p' && c <= 'y' {
				if i+1 >= len(text) {
					return nil, fmt.Errorf("%w: %q", ErrInvalidCellState, token)
				}
				token = text[i : i+2]
			}
			state, err := cellFromToken(token)
			if err != nil {
				return nil, err
			}
			i += len(token)
			for range count {
				if state != 0 {
					pos := BigVec{new(big.Int).Set(x), new(big.Int).Set(y)}
					tree = tree.SetCell(pos, state)
				}
				x.Add(x, bigOne)
			}
		}
	}
	return tree, nil
}

// EncodeRLE emits a pattern as Golly Extended RLE, walking rows top to
// bottom in RLE space (bottom to top in tree space) and run-length
// encoding runs of identical cells. Default cells are elided at the ends
// of rows, and blank rows collapse into counted "$" items.
func EncodeRLE(p *Pattern) string {
	if p.Tree.Dim() != Dim2D {
		panic("RLE encoding requires a 2-dimensional tree")
	}
	var sb strings.Builder
	cells := p.Tree.NonDefaultCells()
	if len(cells) == 0 {
		writeRLEPreamble(&sb, p, nil, nil)
		sb.WriteString("!\n")
		return sb.String()
	}

	lo := cells[0].Clone()
	hi := cells[0].Clone()
	for _, c := range cells[1:] {
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	writeRLEPreamble(&sb, p, lo, hi)

	type rowCell struct {
		x     *big.Int
		state Cell
	}
	rows := make(map[string][]rowCell)
	var ys []*big.Int
	for _, c := range cells {
		key := c[Y].String()
		if _, seen := rows[key]; !seen {
			ys = append(ys, c[Y])
		}
		rows[key] = append(rows[key], rowCell{x: c[X], state: p.Tree.GetCell(c)})
	}
	// Top RLE row first: descending tree Y.
	slices.SortFunc(ys, func(a, b *big.Int) int { return b.Cmp(a) })

	line := 0
	writeItem := func(item string) {
		if line+len(item) > 70 {
			sb.WriteByte('\n')
			line = 0
		}
		sb.WriteString(item)
		line += len(item)
	}
	writeRun := func(count *big.Int, token string) {
		if count.Cmp(bigOne) > 0 {
			writeItem(count.String() + token)
		} else {
			writeItem(token)
		}
	}

	var prevY *big.Int
	for _, yk := range ys {
		if prevY != nil {
			writeRun(new(big.Int).Sub(prevY, yk), "$")
		}
		prevY = yk

		row := rows[yk.String()]
		slices.SortFunc(row, func(a, b rowCell) int { return a.x.Cmp(b.x) })
		cursor := new(big.Int).Set(lo[X])
		runState := Cell(0)
		runLen := 0
		flush := func() {
			if runLen > 0 {
				writeRun(big.NewInt(int64(runLen)), cellToken(runState))
				runLen = 0
			}
		}
		for _, rc := range row {
			if gap := new(big.Int).Sub(rc.x, cursor); gap.Sign() > 0 {
				flush()
				writeRun(gap, cellToken(0))
			}
			if runLen > 0 && rc.state != runState {
				flush()
			}
			runState = rc.state
			runLen++
			cursor.Add(rc.x, bigOne)
		}
		flush()
	}
	writeItem("!")
	sb.WriteByte('\n')
	return sb.String()
}

// writeRLEPreamble emits the #CXRLE note, the preserved comments, and the
// header line. lo and hi are the corners of the bounding rectangle in
// tree coordinates, or nil for an empty pattern.
func writeRLEPreamble(sb *strings.Builder, p *Pattern, lo, hi BigVec) {
	if lo != nil {
		// The top-left corner in RLE coordinates: Y is reflected.
		rleY := new(big.Int).Neg(hi[Y])
		rleY.Sub(rleY, bigOne)
		fmt.Fprintf(sb, "#CXRLE Pos=%v,%v", lo[X], rleY)
		if p.Generation != 0 {
			fmt.Fprintf(sb, " Gen=%d", p.Generation)
		}
		sb.WriteByte('\n')
	}
	for _, comment := range p.Comments {
		sb.WriteByte('#')
		sb.WriteString(comment)
		sb.WriteByte('\n')
	}
	w, h := bigZero, bigZero
	if lo != nil {
		w = new(big.Int).Sub(hi[X], lo[X])
		w.Add(w, bigOne)
		h = new(big.Int).Sub(hi[Y], lo[Y])
		h.Add(h, bigOne)
	}
	fmt.Fprintf(sb, "x = %v, y = %v", w, h)
	if p.Rule != "" {
		fmt.Fprintf(sb, ", rule = %s", p.Rule)
	}
	sb.WriteByte('\n')
}
