package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdlens/internal/document"
	fsutil "github.com/kk-code-lab/mdlens/internal/fs"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
	inputui "github.com/kk-code-lab/mdlens/internal/ui/input"
	renderui "github.com/kk-code-lab/mdlens/internal/ui/render"
)

// Options configures the viewer.
type Options struct {
	TabWidth int
	MaxBytes int64 // <= 0 means fs.DefaultMaxDocumentBytes
}

// Application represents the running viewer.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	editorCmd  []string
}

// Close releases the terminal.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}

// Snapshot returns the document currently on screen.
func (app *Application) Snapshot() *document.Snapshot {
	return app.state.Snapshot()
}

// documentLoader reads path and publishes its text as the holder's next
// version. Unchanged text keeps the current version.
func documentLoader(holder *document.Holder, maxBytes int64) statepkg.LoadFunc {
	return func(path string) (*document.Snapshot, error) {
		text, err := fsutil.ReadDocument(path, maxBytes)
		if err != nil {
			return nil, err
		}
		if current := holder.Current(); current != nil && current.Source == text {
			return current, nil
		}
		return holder.Publish(text), nil
	}
}
