//go:build windows

package app

import "os"

// There is no SIGTSTP/SIGCONT on Windows; suspend is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}

func contSignals() []os.Signal {
	return nil
}
