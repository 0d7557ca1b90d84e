//go:build windows

package app

// Windows consoles have no job control; suspend keeps the UI running.
func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool {
	return false
}
