package space

import "github.com/ItsNotGoodName/corrosion/internal/geom"

// LayoutGrid splits an area into equal panes, adding columns before rows.
type LayoutGrid struct {
	area       geom.Rect
	paneWidth  int
	paneHeight int
	columns    int
	rows       int
}

func NewLayoutGrid(area geom.Rect, count int) LayoutGrid {
	columns, rows := 0, 0
	for columns*rows < count {
		columns++
		if columns*rows >= count {
			break
		}
		rows++
	}
	if columns == 0 {
		columns, rows = 1, 1
	}
	return LayoutGrid{
		area:       area,
		paneWidth:  area.Size.W / columns,
		paneHeight: area.Size.H / rows,
		columns:    columns,
		rows:       rows,
	}
}

func (l LayoutGrid) Count() int {
	return l.columns * l.rows
}

// Pane returns the rectangle of pane index, counted left to right then top to bottom.
func (l LayoutGrid) Pane(index int) geom.Rect {
	row, col := index/l.columns, index%l.columns
	return geom.NewRect(
		l.area.Loc.X+l.paneWidth*col,
		l.area.Loc.Y+l.paneHeight*row,
		l.paneWidth,
		l.paneHeight,
	)
}
