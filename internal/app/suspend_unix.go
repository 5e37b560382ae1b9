//go:build !windows

package app

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
	"golang.org/x/sys/unix"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process so job control in the launching shell keeps
	// working with `fg`.
	_ = unix.Kill(unix.Getpid(), unix.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		if _, err := app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
			app.state.LastError = err
		}
	}
	return true
}
