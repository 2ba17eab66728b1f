package input

import (
	"bufio"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hatband/events"
)

// ReadScript plays keys read from r, one rune per key event
// Each line is played after the previous line's holds have expired
// At end of input every held key is released and Quit is pushed
func (k *Keyboard) ReadScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		if !first {
			time.Sleep(k.hold)
		}
		first = false

		for _, c := range sc.Text() {
			switch c {
			case '\t':
				k.Key(tcell.KeyTab, 0)
			case 0x1b:
				k.Key(tcell.KeyEscape, 0)
			case ' ':
			default:
				k.Key(tcell.KeyRune, c)
			}
		}
	}

	k.Stop()
	k.queue.Push(events.Press(events.EventQuit, 0))
	return sc.Err()
}
