package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappyplane/internal/core"
)

// Visual characters for rendering
const (
	TowerChar     = '█'
	CapTopChar    = '▀'
	CapBottomChar = '▄'
	GroundChar    = '▓'
	GroundAltChar = '▒'
	CloudChar     = '≈'
	RidgeChar     = '^'
	BuildingChar  = '░'
	BodyChar      = '▬'
	ExhaustChar   = '~'
	GuideChar     = '┈'
)

// cityHeights repeats across the skyline, one entry per 50-unit block.
var cityHeights = []int{50, 80, 35, 65, 90, 45, 70, 55, 85, 40, 75, 60}

// Viewport maps field units onto a character grid of W x H cells.
type Viewport struct {
	W, H int
}

// ToScreenX converts a field x-coordinate to a column.
func (v Viewport) ToScreenX(fx int) int {
	return floorDiv(fx*v.W, FieldWidth)
}

// ToScreenY converts a field y-coordinate to a row.
func (v Viewport) ToScreenY(fy int) int {
	return floorDiv(fy*v.H, FieldHeight)
}

// ToFieldX converts a column to the field x-coordinate of its center.
func (v Viewport) ToFieldX(col int) int {
	if v.W <= 0 {
		return 0
	}
	return (2*col + 1) * FieldWidth / (2 * v.W)
}

// ToFieldY converts a row to the field y-coordinate of its center.
func (v Viewport) ToFieldY(row int) int {
	if v.H <= 0 {
		return 0
	}
	return (2*row + 1) * FieldHeight / (2 * v.H)
}

// ToScreenRect converts a field rectangle to the cells it covers. Non-empty
// field rectangles always cover at least one cell.
func (v Viewport) ToScreenRect(r core.Rect) core.Rect {
	x0, y0 := v.ToScreenX(r.X), v.ToScreenY(r.Y)
	x1, y1 := v.ToScreenX(r.Right()), v.ToScreenY(r.Bottom())
	if r.W > 0 && x1 == x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 == y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Render draws a frame of the snapshot into dst.
func Render(dst *core.Screen, snap Snapshot, sc *Scenery) {
	dst.Clear()
	v := Viewport{W: dst.Width(), H: dst.Height()}
	if v.W <= 0 || v.H <= 0 {
		return
	}

	drawClouds(dst, v, sc)
	drawSkyline(dst, v, sc)
	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o)
	}
	drawGround(dst, v, sc)

	plane := snap.Plane
	if snap.Phase == PhaseMenu || snap.Phase == PhaseControlSelect {
		plane = NewPlane(snap.Mode)
		if sc != nil {
			plane.Y = sc.IdleY()
		}
	}
	drawPlane(dst, v, plane)

	switch snap.Phase {
	case PhaseMenu:
		drawMenu(dst, v, snap)
	case PhaseControlSelect:
		drawControlSelect(dst, v, snap)
	case PhasePlaying:
		if snap.Mode == ControlTracking {
			drawGuide(dst, v, snap.PointerY)
		}
		drawHUD(dst, snap)
	case PhaseGameOver:
		drawHUD(dst, snap)
		drawGameOver(dst, snap)
	}

	if sc != nil && sc.Flash() > crashFlash/2 {
		drawFlash(dst)
	}
}

func drawClouds(dst *core.Screen, v Viewport, sc *Scenery) {
	if sc == nil {
		return
	}
	for _, c := range sc.clouds {
		r := v.ToScreenRect(core.NewRect(int(c.x), c.y, 90, 25))
		dst.DrawHLineColor(r.X, r.Y, r.W, CloudChar, core.ColorWhite)
	}
}

// drawSkyline draws the mountain ridge and city blocks behind the towers.
func drawSkyline(dst *core.Screen, v Viewport, sc *Scenery) {
	mountainOffset, cityOffset := 0, 0
	if sc != nil {
		mountainOffset = int(sc.mountainOffset)
		cityOffset = int(sc.cityOffset)
	}

	baseY := GroundY - 30
	for col := 0; col < v.W; col++ {
		fx := v.ToFieldX(col) + mountainOffset
		// Triangle wave: peaks of 90 units every 140 units.
		phase := math.Abs(float64(fx%140) - 70)
		peak := baseY - int(90*(1-phase/70))
		dst.SetColor(col, v.ToScreenY(peak), RidgeChar, core.ColorOlive)
	}

	for col := 0; col < v.W; col++ {
		fx := v.ToFieldX(col) + cityOffset
		block := fx / 50
		if fx%50 >= 40 {
			continue // Gap between buildings
		}
		h := cityHeights[block%len(cityHeights)]
		top := v.ToScreenY(GroundY - h)
		for row := top; row < v.ToScreenY(GroundY); row++ {
			dst.SetColor(col, row, BuildingChar, core.ColorDarkGray)
		}
	}
}

func drawObstacle(dst *core.Screen, v Viewport, o Obstacle) {
	top := v.ToScreenRect(core.NewRect(o.X, 0, o.Width, o.GapY))
	dst.DrawRectColor(top, TowerChar, core.ColorSteel)
	dst.DrawHLineColor(top.X, top.Bottom()-1, top.W, CapTopChar, core.ColorRed)

	bottomY := o.GapY + o.Gap
	bottom := v.ToScreenRect(core.NewRect(o.X, bottomY, o.Width, GroundY-bottomY))
	dst.DrawRectColor(bottom, TowerChar, core.ColorSteel)
	dst.DrawHLineColor(bottom.X, bottom.Y, bottom.W, CapBottomChar, core.ColorRed)
}

func drawGround(dst *core.Screen, v Viewport, sc *Scenery) {
	offset := 0
	if sc != nil {
		offset = sc.groundOffset
	}
	for row := v.ToScreenY(GroundY); row < v.H; row++ {
		for col := 0; col < v.W; col++ {
			ch := GroundChar
			if ((v.ToFieldX(col)+offset)/(groundPeriod/2))%2 == 1 {
				ch = GroundAltChar
			}
			dst.SetColor(col, row, ch, core.ColorGreen)
		}
	}
}

func drawPlane(dst *core.Screen, v Viewport, p Plane) {
	r := v.ToScreenRect(p.Body().Rect())
	row := r.Y + r.H/2

	dst.DrawHLineColor(r.X, row, r.W, BodyChar, core.ColorBrightWhite)

	nose := '▶'
	switch {
	case p.Rotation <= -8:
		nose = '◥'
	case p.Rotation >= 8:
		nose = '◢'
	}
	dst.SetColor(r.Right()-1, row, nose, core.ColorBrightRed)

	if p.EngineOn {
		dst.SetColor(r.X-1, row, ExhaustChar, core.ColorGray)
	}
}

func drawGuide(dst *core.Screen, v Viewport, pointerY int) {
	row := v.ToScreenY(pointerY)
	start := v.ToScreenX(PlaneX + PlaneWidth + 10)
	dst.DrawHLineColor(start, row, v.W-start, GuideChar, core.ColorDarkGray)
}

func drawMenu(dst *core.Screen, v Viewport, snap Snapshot) {
	y := v.ToScreenY(100)
	dst.DrawTextCenteredColor(y, "F L A P P Y   P L A N E", core.ColorGold)
	dst.DrawTextCenteredColor(y+1, "dodge the towers, fly as far as you can", core.ColorWhite)

	start := v.ToScreenY(FieldHeight/2 + 80)
	dst.DrawTextCenteredColor(start, "Press ENTER to start", core.ColorBrightWhite)
	if snap.Run.BestScore > 0 {
		dst.DrawTextCenteredColor(start+1, fmt.Sprintf("Best: %d", snap.Run.BestScore), core.ColorGold)
	}
	dst.DrawTextCenteredColor(start+3, "M: music  |  Tab: runs  |  Q: quit", core.ColorGray)
}

func drawControlSelect(dst *core.Screen, v Viewport, snap Snapshot) {
	panel := v.ToScreenRect(SelectPanel)
	dst.DrawRectColor(panel, ' ', core.ColorDefault)
	dst.DrawBoxColor(panel, core.ColorSkyBlue)
	dst.DrawTextCenteredColor(panel.Y+1, "CHOOSE YOUR CONTROLS", core.ColorBrightWhite)

	drawOption(dst, v, ImpulseOptionRegion, snap.Selected == ControlImpulse,
		"KEYBOARD", "W/S or arrows to climb and dive")
	drawOption(dst, v, TrackingOptionRegion, snap.Selected == ControlTracking,
		"MOUSE", "the plane follows the pointer")

	dst.DrawTextCenteredColor(panel.Bottom(), "Up/Down: choose  |  Enter/click: fly  |  Esc: back", core.ColorGray)
}

func drawOption(dst *core.Screen, v Viewport, region core.Rect, highlighted bool, name, desc string) {
	r := v.ToScreenRect(region)
	color := core.ColorGray
	marker := "  "
	if highlighted {
		color = core.ColorGold
		marker = "> "
	}
	if r.H >= 3 {
		dst.DrawBoxColor(r, color)
	}
	textY := r.Y + r.H/2
	if r.H >= 4 {
		textY = r.Y + 1
	}
	dst.DrawTextColor(r.X+2, textY, marker+name, color)
	if r.H >= 4 {
		dst.DrawTextColor(r.X+4, textY+1, desc, core.ColorWhite)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	w := dst.Width()

	dst.DrawTextCenteredColor(0, fmt.Sprintf(" %d ", snap.Run.Score), core.ColorBrightWhite)
	dst.DrawTextColor(1, 0, fmt.Sprintf("SPD %d", snap.Run.Speed), core.ColorWhite)
	dst.DrawTextColor(1, 1, fmt.Sprintf("ALT %dm", snap.Altitude()), core.ColorWhite)

	mode := snap.Mode.String()
	next := fmt.Sprintf("+SPD in %d", Difficulty{}.PointsToNextLevel(snap.Run.Score))
	dst.DrawTextColor(w-len(mode)-1, 0, mode, core.ColorGray)
	dst.DrawTextColor(w-len(next)-1, 1, next, core.ColorOrange)

	audio := "M: OFF"
	audioColor := core.ColorRed
	if snap.AudioOn {
		audio = "M: ON ♪"
		audioColor = core.ColorGreen
	}
	dst.DrawTextColor(w-len([]rune(audio))-1, dst.Height()-1, audio, audioColor)
}

func drawGameOver(dst *core.Screen, snap Snapshot) {
	w, h := dst.Width(), dst.Height()
	boxW, boxH := 30, 11
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)
	dst.DrawRectColor(box, ' ', core.ColorDefault)
	dst.DrawBoxColor(box, core.ColorSkyBlue)

	run := snap.Run
	rank := RankFor(run.Score)

	dst.DrawTextCenteredColor(box.Y+1, "CRASH!", core.ColorBrightRed)
	dst.DrawTextCenteredColor(box.Y+3, fmt.Sprintf("Score: %d", run.Score), core.ColorBrightWhite)
	dst.DrawTextCenteredColor(box.Y+4, fmt.Sprintf("Top speed: %d", run.Speed), core.ColorWhite)
	dst.DrawTextCenteredColor(box.Y+5, fmt.Sprintf("Best: %d", run.BestScore), core.ColorGold)
	dst.DrawTextCenteredColor(box.Y+7, "<< "+rank.Title+" >>", rankColor(rank))
	if run.Score == run.BestScore && run.Score > 0 {
		dst.DrawTextCenteredColor(box.Y+8, "NEW BEST!", core.ColorRed)
	}
	dst.DrawTextCenteredColor(box.Bottom(), "ENTER: back to menu", core.ColorGray)
}

func rankColor(r Rank) core.Color {
	switch r.Title {
	case "ACE":
		return core.ColorGold
	case "CAPTAIN":
		return core.ColorSilver
	case "LIEUTENANT":
		return core.ColorBronze
	case "CADET":
		return core.ColorGreen
	default:
		return core.ColorGray
	}
}

// drawFlash whitens the empty sky right after a crash.
func drawFlash(dst *core.Screen) {
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if dst.Get(x, y) == ' ' {
				dst.SetColor(x, y, '░', core.ColorBrightWhite)
			}
		}
	}
}
