package gui

import (
	"github.com/rivo/tview"
)

func (g *Gui) databaseSelection() tview.Primitive {
	list := tview.NewList()

	pick := func(dbType string) func() {
		return func() {
			g.show("db-config", func() tview.Primitive { return g.databaseConfigPage(dbType) })
		}
	}

	list.AddItem("sqlite", "A single database file next to the binary. [::b]Pick this if you are unsure", '1', pick("sqlite"))
	list.AddItem("MySql", "Uses an existing MySql server, useful when several services share the data", '2', pick("mysql"))
	list.AddItem("Postgres", "Uses an existing Postgres server, useful when several services share the data", '3', pick("postgres"))

	return frame(list, "Choosing Database", "Which database should hold the dataset?", keysContinue)
}

func (g *Gui) seedSelection() tview.Primitive {
	list := tview.NewList()

	next := func(seed bool) func() {
		return func() {
			g.config.Misc.SeedOnStartup = seed
			g.show("ingest-config", g.ingestConfigPage)
		}
	}

	list.AddItem("Every start", "Bring the dataset up to date each time Local Dex starts. Only missing rows are downloaded, so later starts are quick", '1', next(true))
	list.AddItem("Only on request", "Leave the database alone on start, run with --seed to download the dataset", '2', next(false))

	return frame(list, "Seeding", "When should the dataset be downloaded? The first download takes a while.", keysContinue)
}
