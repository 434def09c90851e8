package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDim(t *testing.T) {
	tests := []struct {
		name string
		have int
		want int
	}{
		{"even bumps to next odd", 20, 21},
		{"odd in range kept", 31, 31},
		{"below minimum", 5, 21},
		{"zero", 0, 21},
		{"above maximum", 1000, 499},
		{"even just below maximum", 498, 499},
		{"maximum kept", 499, 499},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, NormalizeDim(test.have))
		})
	}
}

func TestNewGridCorrectsDimensions(t *testing.T) {
	g := NewGrid(20, 30)
	assert.Equal(t, 21, g.Rows())
	assert.Equal(t, 31, g.Cols())

	g = NewGrid(5, 5)
	assert.Equal(t, 21, g.Rows())
	assert.Equal(t, 21, g.Cols())

	g = NewGrid(1000, 1000)
	assert.Equal(t, 499, g.Rows())
	assert.Equal(t, 499, g.Cols())
}

func TestStartEndConvention(t *testing.T) {
	g := NewGrid(21, 31)
	assert.Equal(t, Point{Row: 1, Col: 0}, g.Start())
	assert.Equal(t, Point{Row: 19, Col: 30}, g.End())
}

func TestAdjacent(t *testing.T) {
	p := Point{Row: 3, Col: 4}
	assert.True(t, p.Adjacent(Point{Row: 2, Col: 4}))
	assert.True(t, p.Adjacent(Point{Row: 3, Col: 5}))
	assert.False(t, p.Adjacent(p))
	assert.False(t, p.Adjacent(Point{Row: 2, Col: 5}))
	assert.False(t, p.Adjacent(Point{Row: 3, Col: 6}))
}

func TestSnapshotGlyphs(t *testing.T) {
	g := NewGrid(21, 21)
	g.setState(Point{Row: 1, Col: 1}, Open)
	g.setState(Point{Row: 1, Col: 2}, Open)
	g.setPath(Point{Row: 1, Col: 1})
	g.setMark(Point{Row: 1, Col: 2}, MarkFrontier)

	snap := g.Snapshot()
	assert.Len(t, snap.Cells, 21)
	assert.Equal(t, byte(glyphWall), snap.Cells[0][0])
	assert.Equal(t, byte(glyphPath), snap.Cells[1][1])
	assert.Equal(t, byte(glyphFrontier), snap.Cells[1][2])
}

func TestResetAnnotations(t *testing.T) {
	g := NewGrid(21, 21)
	p := Point{Row: 1, Col: 1}
	g.setState(p, Open+5)
	g.setPath(p)
	g.setMark(p, MarkClosed)

	g.resetAnnotations()
	assert.Equal(t, Open, g.at(p))
	assert.False(t, g.IsPath(p))
	assert.Equal(t, MarkNone, g.marks[g.index(p)])

	// a second reset changes nothing
	g.resetAnnotations()
	assert.Equal(t, Open, g.at(p))
	assert.False(t, g.IsPath(p))
}
