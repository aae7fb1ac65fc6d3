/*
Package tui
File: app.go
Description:
    The terminal client loop. Key events become session commands; every
    session change marks the screen dirty and the next loop pass redraws it
    from a fresh snapshot. The client never mutates the economy itself.
*/

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/scene"
)

const chimeLength = 80 * time.Millisecond

// Session is the part of game.Session the client drives.
type Session interface {
	Snapshot() game.State
	Universe() *game.Universe
	Done() <-chan struct{}
	HoldService(ctx context.Context) error
	Outreach(ctx context.Context) (int, error)
	UpgradeVenue(ctx context.Context) error
	Hire(ctx context.Context, role string) error
}

// App paints one session onto a tcell screen.
type App struct {
	screen   tcell.Screen
	session  Session
	composer *scene.Composer
	audio    *Audio

	dirty  chan struct{}
	status string

	scrollX, scrollY int
	frameCols        int
	frameRows        int
}

// NewApp creates the client. Pass the returned App's Notify to the
// session's OnChange before the session starts.
func NewApp(screen tcell.Screen, session Session, composer *scene.Composer, audio *Audio) *App {
	return &App{
		screen:   screen,
		session:  session,
		composer: composer,
		audio:    audio,
		dirty:    make(chan struct{}, 1),
	}
}

// Notify marks the screen dirty. It never blocks, so it is safe as a
// session change listener.
func (a *App) Notify(*game.Universe, game.State) {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
}

// Run drives the client until the player quits, ctx is cancelled or the
// session ends.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.session.Done():
			return game.ErrSessionClosed
		case <-a.dirty:
			a.draw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
			case *tcell.EventKey:
				cmd := DecodeKey(ev.Key(), ev.Rune(), ev.Modifiers(), roleKeys(a.session.Universe()))
				if cmd.Kind == CmdQuit {
					return nil
				}
				a.Execute(ctx, cmd)
			}
			a.draw()
		}
	}
}

// Execute submits cmd to the session and records its outcome in the
// status line.
func (a *App) Execute(ctx context.Context, cmd Command) {
	var (
		err  error
		tone = ToneSuccess
	)
	switch cmd.Kind {
	case CmdService:
		err = a.session.HoldService(ctx)
	case CmdOutreach:
		_, err = a.session.Outreach(ctx)
	case CmdUpgrade:
		err = a.session.UpgradeVenue(ctx)
		tone = ToneUpgrade
	case CmdHire:
		err = a.session.Hire(ctx, cmd.Role)
	case CmdScroll:
		a.scroll(cmd.DX, cmd.DY)
		return
	default:
		return
	}

	a.status = ""
	switch {
	case err == nil:
		a.audio.Chime(tone, chimeLength)
	case isGuardError(err):
		// the session already logged why
		a.audio.Chime(ToneDenied, chimeLength)
	default:
		a.status = fmt.Sprintf("error: %v", err)
	}
}

// Status is the current status line.
func (a *App) Status() string { return a.status }

func isGuardError(err error) bool {
	return errors.Is(err, game.ErrInsufficientFunds) ||
		errors.Is(err, game.ErrInsufficientSpirit) ||
		errors.Is(err, game.ErrNoNextVenue)
}

func (a *App) scroll(dx, dy int) {
	a.scrollX = clampScroll(a.scrollX+dx, a.frameCols)
	a.scrollY = clampScroll(a.scrollY+dy, a.frameRows)
}

func clampScroll(v, limit int) int {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}

func roleKeys(u *game.Universe) []string {
	keys := make([]string, len(u.Staff))
	for i, r := range u.Staff {
		keys[i] = r.Key
	}
	return keys
}

func (a *App) draw() {
	u := a.session.Universe()
	st := a.session.Snapshot()

	a.screen.Clear()
	width, height := a.screen.Size()
	view, _ := Layout(width, height)

	frame, err := a.composer.Compose(u, st)
	if err != nil {
		a.status = fmt.Sprintf("error: %v", err)
	} else {
		cols, rows := FrameSize(frame)
		a.frameCols = max(cols-view.Width, 0)
		a.frameRows = max(rows-view.Height, 0)
		a.scrollX = clampScroll(a.scrollX, a.frameCols)
		a.scrollY = clampScroll(a.scrollY, a.frameRows)

		// 1. Center frames that fit
		if cols < view.Width {
			off := (view.Width - cols) / 2
			view.Left += off
			view.Width -= off
		}
		if rows < view.Height {
			off := (view.Height - rows) / 2
			view.Top += off
			view.Height -= off
		}

		// 2. Paint the venue
		view.ScrollX, view.ScrollY = a.scrollX, a.scrollY
		Paint(a.screen, view, frame)
	}

	// 3. Overlay the HUD
	DrawHUD(a.screen, game.NewStateView(u, st), u, a.status)
	a.screen.Show()
}
