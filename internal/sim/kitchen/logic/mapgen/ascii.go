package mapgen

import "strings"

var roleGlyphs = map[Role]byte{
	RoleFishCrate:    'F',
	RoleLettuceCrate: 'L',
	RoleBreadCrate:   'B',
	RoleServing:      'S',
	RoleTrash:        'X',
}

// ASCIILegend explains the characters used by ASCII.
const ASCIILegend = "# placeholder  = plain  K chopping  O cooking  F/L/B crates  S serving  X trash  . floor"

// ASCII draws the layout one character per cell, rows separated by newlines.
func (l Layout) ASCII() string {
	var b strings.Builder
	b.Grow((l.Cols + 1) * l.Rows)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			b.WriteByte(l.glyph(Cell{r, c}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (l Layout) glyph(c Cell) byte {
	if role, ok := l.Specials[c]; ok {
		return roleGlyphs[role]
	}
	if _, ok := l.Placeholders[c]; ok {
		return '#'
	}
	if _, ok := l.Plain[c]; ok {
		return '='
	}
	if _, ok := l.Chopping[c]; ok {
		return 'K'
	}
	if _, ok := l.Cooking[c]; ok {
		return 'O'
	}
	return '.'
}
