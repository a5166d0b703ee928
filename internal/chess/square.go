package chess

import "fmt"

// SquareName returns the algebraic name of a square, e.g. "e4".
func SquareName(row, col int) string {
	CheckSquare(row, col)
	return string([]byte{byte('a' + col), byte('1' + row)})
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(s string) (row, col int, err error) {
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("bad square %q", s)
	}
	col = int(s[0]) - 'a'
	row = int(s[1]) - '1'
	if !InBounds(row, col) {
		return 0, 0, fmt.Errorf("bad square %q", s)
	}
	return row, col, nil
}
