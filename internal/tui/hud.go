/*
Package tui
File: hud.go
Description:
    The heads-up display: resource bar on top, actions and staff on the
    right, message log at the bottom.
*/

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/everforgeworks/congregation/internal/game"
)

// HUD geometry.
const (
	TopBarRows   = 1
	SidePanelW   = 34
	MessageRows  = 4
	minSceneCols = 10
)

var (
	styleBar     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnabled = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// DrawText writes s at (x, y), clipped to maxX. It returns the column after
// the last rune written.
func DrawText(c Canvas, x, y, maxX int, style tcell.Style, s string) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func fill(c Canvas, x0, y, x1 int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		c.SetContent(x, y, ' ', nil, style)
	}
}

// Layout splits the canvas into the scene viewport and the panel origin.
func Layout(width, height int) (view Viewport, panelX int) {
	panelX = width - SidePanelW
	if panelX < minSceneCols {
		panelX = width
	}
	rows := height - TopBarRows - MessageRows
	if rows < 0 {
		rows = 0
	}
	return Viewport{Left: 0, Top: TopBarRows, Width: panelX, Height: rows}, panelX
}

// TopBar is the single-line resource summary.
func TopBar(v game.StateView) string {
	return fmt.Sprintf(" $%d | Members %d/%d | Spirit %d | Week %d, Day %d | %s",
		v.Money, v.Members, v.Capacity, v.Spirit, v.Week, v.Day, v.VenueName)
}

// PanelLines lists the side panel rows with the style each is drawn in.
func PanelLines(v game.StateView, u *game.Universe) ([]string, []tcell.Style) {
	var lines []string
	var styles []tcell.Style
	add := func(ok bool, format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
		if ok {
			styles = append(styles, styleEnabled)
		} else {
			styles = append(styles, styleDim)
		}
	}

	add(true, "ACTIONS")
	add(v.CanService, "[s] Hold Service  -%d spirit", int64(u.Actions.ServiceSpiritCost))
	add(v.CanOutreach, "[o] Outreach      -$%d", int64(u.Actions.OutreachCost))
	if v.NextVenueName != "" {
		add(v.CanUpgrade, "[u] Move to %s  $%d", v.NextVenueName, int64(v.UpgradeCost))
	} else {
		add(false, "[u] Final venue reached")
	}
	add(true, "")
	add(true, "STAFF")
	for i, s := range v.Staff {
		if i >= 9 {
			break
		}
		add(s.CanAfford, "[%d] %s x%d  $%d", i+1, s.Name, s.Owned, int64(s.Cost))
	}
	add(true, "")
	add(false, "arrows scroll, q quits")
	return lines, styles
}

// DrawHUD paints the bar, the side panel and the message log. status is an
// extra line shown above the log, usually the last action's error.
func DrawHUD(c Canvas, v game.StateView, u *game.Universe, status string) {
	width, height := c.Size()
	_, panelX := Layout(width, height)

	fill(c, 0, 0, width, styleBar)
	DrawText(c, 0, 0, width, styleBar, TopBar(v))

	if panelX < width {
		lines, styles := PanelLines(v, u)
		for i, line := range lines {
			y := TopBarRows + 1 + i
			if y >= height-MessageRows {
				break
			}
			DrawText(c, panelX+1, y, width, styles[i], line)
		}
	}

	top := height - MessageRows
	if top < TopBarRows {
		return
	}
	for row := 0; row < MessageRows; row++ {
		fill(c, 0, top+row, width, styleText)
	}
	if status != "" {
		DrawText(c, 1, top, width, styleStatus, status)
		top++
	}
	for i, msg := range v.Messages {
		y := top + i
		if y >= height {
			break
		}
		style := styleText
		if i > 0 {
			style = styleDim
		}
		DrawText(c, 1, y, width, style, msg)
	}
}
