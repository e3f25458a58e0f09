package reference

import "unicode"

// Adjacency maps a base key to the keys that physically touch it.
type Adjacency map[rune]map[rune]struct{}

// US QWERTY rows with their stagger, in quarter-key units from the left edge.
var qwertyRows = []struct {
	keys   string
	offset int
}{
	{"`1234567890-=", 0},
	{"qwertyuiop[]\\", 6},
	{"asdfghjkl;'", 7},
	{"zxcvbnm,./", 9},
}

const keyWidth = 4

// shifted maps shift-layer characters to the key that produces them.
var shifted = func() map[rune]rune {
	pairs := []struct{ upper, base string }{
		{"~!@#$%^&*()_+", "`1234567890-="},
		{"{}|", "[]\\"},
		{":\"", ";'"},
		{"<>?", ",./"},
	}
	m := make(map[rune]rune)
	for _, p := range pairs {
		base := []rune(p.base)
		for i, r := range []rune(p.upper) {
			m[r] = base[i]
		}
	}
	return m
}()

// QWERTY builds the adjacency map: keys touch when they are neighbours in a row or
// overlap horizontally in the row above or below.
func QWERTY() Adjacency {
	type pos struct{ row, x int }
	at := make(map[rune]pos)
	for row, r := range qwertyRows {
		for col, k := range []rune(r.keys) {
			at[k] = pos{row: row, x: r.offset + col*keyWidth}
		}
	}

	adj := make(Adjacency, len(at))
	for a, pa := range at {
		adj[a] = make(map[rune]struct{})
		for b, pb := range at {
			if a == b {
				continue
			}
			dx := pa.x - pb.x
			if dx < 0 {
				dx = -dx
			}
			dr := pa.row - pb.row
			sameRow := dr == 0 && dx == keyWidth
			nextRow := (dr == 1 || dr == -1) && dx < keyWidth
			if sameRow || nextRow {
				adj[a][b] = struct{}{}
			}
		}
	}
	return adj
}

// Adjacent compares keys case-insensitively and treats shifted symbols as their base key.
func (a Adjacency) Adjacent(x, y rune) bool {
	near, ok := a[baseKey(x)]
	if !ok {
		return false
	}
	_, ok = near[baseKey(y)]
	return ok
}

func baseKey(r rune) rune {
	r = unicode.ToLower(r)
	if b, ok := shifted[r]; ok {
		return b
	}
	return r
}
