package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	statepkg "github.com/kk-code-lab/mdlens/internal/state"
)

var commandBuilder = exec.Command

// handleEditorOpen hands the terminal to the editor and reloads the
// document once it exits.
func (app *Application) handleEditorOpen() bool {
	if !app.state.EditorAvailable || len(app.editorCmd) == 0 {
		return false
	}

	if err := app.openFileInEditor(app.state.Path); err != nil {
		app.state.LastError = err
		return true
	}
	if _, err := app.reducer.Reduce(app.state, statepkg.ReloadAction{}); err != nil {
		app.state.LastError = err
	}
	return true
}

func (app *Application) openFileInEditor(filePath string) error {
	if len(app.editorCmd) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorArgs := app.editorArgsWithFile(filePath)
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	// Keystrokes typed into the editor must not replay into the viewer.
	_ = flushConsoleInput()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", editorArgs[0], runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
