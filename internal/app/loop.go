package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/markup"
	statepkg "github.com/kk-code-lab/mdlens/internal/state"
	"github.com/kk-code-lab/mdlens/internal/ui/input"
	renderui "github.com/kk-code-lab/mdlens/internal/ui/render"
)

// NewApplication loads path and takes over the terminal.
func NewApplication(path string, opts Options) (*Application, error) {
	holder := document.NewHolder(markup.NewParser())
	load := documentLoader(holder, opts.MaxBytes)
	snap, err := load(path)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so wheel scrolling doesn't leak as key events.
	screen.EnableMouse()

	app := newApplication(screen, path, snap, load, opts.TabWidth)
	app.editorCmd, app.state.EditorAvailable = detectEditorCommand()
	return app, nil
}

func newApplication(screen tcell.Screen, path string, snap *document.Snapshot, load statepkg.LoadFunc, tabWidth int) *Application {
	state := statepkg.NewAppState(path, snap, tabWidth)

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	reducer := statepkg.NewStateReducer(load)
	w, h := screen.Size()
	_, _ = reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h})

	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderui.NewRenderer(screen),
		input:    inputHandler,
		actionCh: actionCh,
	}
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	case nil:
		// PollEvent returns nil once the screen is finalized.
		app.shouldQuit = true
		return false
	default:
		return false
	}
	return true
}

// handleMouse maps the wheel to line scrolling.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return false
	}
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		app.actionCh <- statepkg.ScrollUpAction{}
	case ev.Buttons()&tcell.WheelDown != 0:
		app.actionCh <- statepkg.ScrollDownAction{}
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	return true
}
