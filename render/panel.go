// Package render draws the rig status in the terminal
package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hatband/status"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValue   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleNormal  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSynth   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// helpLines describes the key layout
var helpLines = []string{
	" w e   t y u        1-8  drum pads",
	"a s d f g h j k     z/x  octave or waveforms",
	"                    Tab  next instrument   Esc quit",
}

// StatusPanel draws the registry snapshot on a tcell screen
// Draw may be called from any goroutine
type StatusPanel struct {
	mu     sync.Mutex
	screen tcell.Screen
	reg    *status.Registry
}

// NewStatusPanel creates a panel over screen
func NewStatusPanel(screen tcell.Screen, reg *status.Registry) *StatusPanel {
	return &StatusPanel{screen: screen, reg: reg}
}

// Draw renders one frame and shows it
func (p *StatusPanel) Draw() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.Clear()
	w, _ := p.screen.Size()

	snap := p.reg.Snapshot()
	rig := snap.Rig

	y := 0
	p.text(0, y, w, "hatband", styleTitle)
	y += 2

	mode, modeStyle := rig.Mode, styleNormal
	if rig.Synth() {
		modeStyle = styleSynth
	}
	if snap.DeviceLost {
		mode, modeStyle = "device lost", styleAlert
	}
	p.field(w, y, "Mode", mode, modeStyle)
	y++

	inst := rig.Instrument
	if rig.Synth() {
		inst = fmt.Sprintf("%s  [%s]  %d held", inst, rig.Waveforms, rig.Held)
	} else if rig.Octaves > 0 {
		inst = fmt.Sprintf("%s  octave %d/%d", inst, rig.Octave+1, rig.Octaves)
	}
	p.field(w, y, "Piano", inst, styleValue)
	y++
	p.field(w, y, "Drums", rig.Drums, styleValue)
	y++

	dev := snap.Device
	p.field(w, y, "Voices", fmt.Sprintf("%d active  %d played  %d refused", dev.Active, dev.Played, dev.Refused), styleValue)
	y++

	c := snap.Counters
	events := fmt.Sprintf("%d  switches %d (%d ignored)  %.1f ms",
		c.Events, c.Switches, c.SwitchDropped, float64(c.Latency)/float64(time.Millisecond))
	if c.QueueDropped > 0 {
		events += fmt.Sprintf("  %d lost", c.QueueDropped)
	}
	p.field(w, y, "Events", events, styleValue)
	y += 2

	for _, line := range helpLines {
		p.text(0, y, w, line, styleHelp)
		y++
	}

	p.screen.Show()
}

func (p *StatusPanel) field(w, y int, label, value string, style tcell.Style) {
	x := p.text(0, y, w, fmt.Sprintf("%-8s", label), styleLabel)
	p.text(x, y, w, value, style)
}

// text draws s from x, clipped at w, and returns the next column
func (p *StatusPanel) text(x, y, w int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= w {
			break
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Sync repaints after a resize
func (p *StatusPanel) Sync() {
	p.mu.Lock()
	p.screen.Sync()
	p.mu.Unlock()
	p.Draw()
}
