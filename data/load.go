package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Load parses 2, 3 or 4 column text (x y | x y dy | x dx y dy) and returns
// the points sorted by x. All rows must have the same column count.
func Load(r io.Reader) (*Data1D, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(c rune) bool { return c == ' ' || c == '\t' || c == ',' })
		if len(fields) < 2 || len(fields) > 4 {
			return nil, fmt.Errorf("%w: line %d has %d", ErrColumns, line, len(fields))
		}
		if len(rows) > 0 && len(fields) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d, first row has %d", ErrColumns, line, len(fields), len(rows[0]))
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("data: line %d column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("data: read: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	return fromRows(rows)
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Data1D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// fromRows splits rows into columns and sorts them by x.
func fromRows(rows [][]float64) (*Data1D, error) {
	n := len(rows)
	x := make([]float64, n)
	for i, r := range rows {
		x[i] = r[0]
	}
	order := make([]int, n)
	floats.Argsort(x, order)

	column := func(c int) []float64 {
		out := make([]float64, n)
		for i, j := range order {
			out[i] = rows[j][c]
		}
		return out
	}
	var y, dx, dy []float64
	switch len(rows[0]) {
	case 2:
		y = column(1)
	case 3:
		y, dy = column(1), column(2)
	case 4:
		dx, y, dy = column(1), column(2), column(3)
	}

	return NewData1D(x, y, dx, dy)
}
