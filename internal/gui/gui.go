// Package gui is the interactive first-run wizard that fills in config.json.
package gui

import (
	"os"

	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/go-playground/validator/v10"
	"github.com/rivo/tview"
)

const (
	title = "Local Dex"

	keysContinue = "[red]ESC - exit[-:-:-:-] [yellow] Enter - continue"
	keysForm     = "[red]ESC - exit[-:-:-:-] [yellow] Enter - next input/submit [orange] (Shift+)Tab - switch inputs"
)

type Gui struct {
	app      *tview.Application
	pages    *tview.Pages
	config   *models.Config
	validate *validator.Validate
}

func New(config *models.Config) *Gui {
	g := &Gui{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		config:   &models.Config{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	if config != nil {
		g.config = config
	}
	g.config.ApplyDefaults()

	g.app.EnableMouse(true)
	g.Init()

	return g
}

func (g *Gui) Init() {
	g.pages.AddPage("setup", g.introPage(), true, true)
	g.pages.AddPage("database-type", g.databaseSelection(), true, false)

	g.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			g.app.Stop()
			os.Exit(0)
		}
		return event
	})

	g.app.SetRoot(g.pages, true)
}

// show (re)builds a page and switches to it, so it always renders the
// current config.
func (g *Gui) show(name string, build func() tview.Primitive) {
	g.pages.AddPage(name, build(), true, false)
	g.pages.SwitchToPage(name)
}

// frame wraps p with the border, title and key help shared by every page.
func frame(p tview.Primitive, subtitle, intro, keys string) *tview.Frame {
	f := tview.NewFrame(p)
	f.SetBorder(true)
	f.SetTitle(title + " - " + subtitle)
	if intro != "" {
		f.AddText(intro, true, tview.AlignLeft, tcell.ColorYellow)
	}
	f.AddText(keys, false, tview.AlignLeft, tcell.ColorYellow)
	return f
}

// showErrors redraws f's header followed by errs.
func showErrors(f *tview.Frame, intro, keys string, errs []string) {
	f.Clear()
	if intro != "" {
		f.AddText(intro, true, tview.AlignLeft, tcell.ColorYellow)
	}
	f.AddText(keys, false, tview.AlignLeft, tcell.ColorYellow)
	if len(errs) == 0 {
		return
	}
	f.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
	for _, e := range errs {
		f.AddText(e, true, tview.AlignLeft, tcell.ColorRed)
	}
}

func (g *Gui) Start() error {
	return g.app.Run()
}

func (g *Gui) Stop() {
	g.app.Stop()
}
