package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/sim/kitchen"
)

var (
	hudStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// drawText writes s from (x, y) and returns the column after it.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// HUDLines renders the status block: clock and score, the order queue and the stock.
func HUDLines(f observerproto.FrameMsg) []string {
	clock := f.Clock
	// MM:SS is enough on screen.
	if i := strings.LastIndexByte(clock, ':'); i > 0 {
		clock = clock[:i]
	}
	lines := []string{fmt.Sprintf("Time %s   Score %d", clock, f.Score)}

	orders := make([]string, 0, len(f.Orders))
	for i, o := range f.Orders {
		orders = append(orders, fmt.Sprintf("%d. %s (%s)", i+1, o.Name, strings.Join(o.Requires, "+")))
	}
	lines = append(lines, "Orders: "+strings.Join(orders, "  "))

	stock := make([]string, 0, len(f.Stock))
	for _, s := range f.Stock {
		if s.Count > 0 {
			stock = append(stock, fmt.Sprintf("%s x%d", s.Ingredient, s.Count))
		}
	}
	if len(stock) == 0 {
		stock = append(stock, "-")
	}
	lines = append(lines, "Stock: "+strings.Join(stock, ", "))
	return lines
}

func drawHUD(s tcell.Screen, x, y int, f observerproto.FrameMsg) int {
	for i, l := range HUDLines(f) {
		style := hudStyle
		if i == 0 {
			style = titleStyle
		}
		drawText(s, x, y+i, style, l)
	}
	return y + 3
}

// HelpLines lists each player's controls.
func HelpLines(keys KeyMap, players int, colors []string) []string {
	lines := []string{"Controls (up down left right / interact), Esc quits"}
	for p := 1; p <= players; p++ {
		ks := keys.Keys(kitchen.PlayerID(p))
		if len(ks) < 5 {
			continue
		}
		color := ""
		if p-1 < len(colors) {
			color = " (" + colors[p-1] + ")"
		}
		lines = append(lines, fmt.Sprintf("P%d%s: %s %s %s %s / %s", p, color, ks[0], ks[1], ks[2], ks[3], ks[4]))
	}
	return lines
}

func drawHelp(s tcell.Screen, x, y int, lines []string) {
	for i, l := range lines {
		drawText(s, x, y+i, dimStyle, l)
	}
}

// GameOverLines is the final screen.
func GameOverLines(res kitchen.Result) []string {
	return []string{
		"GAME OVER",
		fmt.Sprintf("Final score: %d", res.Score),
		fmt.Sprintf("Dishes delivered: %d", res.Delivered),
		"Press any key",
	}
}

func drawGameOver(s tcell.Screen, res kitchen.Result) {
	s.Clear()
	w, h := s.Size()
	lines := GameOverLines(res)
	top := max((h-len(lines))/2, 0)
	for i, l := range lines {
		style := hudStyle
		if i == 0 {
			style = titleStyle
		}
		drawText(s, max((w-len([]rune(l)))/2, 0), top+i, style, l)
	}
	s.Show()
}
