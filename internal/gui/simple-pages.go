package gui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rivo/tview"
)

func (g *Gui) introPage() tview.Primitive {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetText(`Welcome to Local Dex. No config.json was found, so this wizard will create one.

Local Dex keeps a local copy of the PokeAPI dataset in a database of your choice and serves it, along with the leveling helpers, over HTTP.
You will be asked for the database, how the dataset should be downloaded, and where the HTTP server should listen.

[::b]Maximizing this terminal window is recommended so nothing gets cut off[-:-:-:-]

Press [red]esc[-:-:-:-] at any point to leave without saving, or [yellow]enter[-:-:-:-] to begin.
`)

	textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter {
			g.pages.SwitchToPage("database-type")
		}
		return event
	})

	return frame(textView, "Setup", "", keysContinue)
}

// describeDatabase renders the connection settings with the password masked.
func describeDatabase(dbType, connectionString string) string {
	switch dbType {
	case "sqlite":
		file := strings.TrimPrefix(connectionString, "file:")
		file, _, _ = strings.Cut(file, "?")
		return fmt.Sprintf("Type: Sqlite\nFile: %s", file)
	case "postgres":
		conf, err := pgx.ParseConfig(connectionString)
		if err != nil {
			return "Failed to parse database connection string"
		}
		return fmt.Sprintf("Type: Postgres\nUser: %s, Password: %s\nHost: %s, Port: %d\nDB Name: %s",
			conf.User, strings.Repeat("*", len(conf.Password)), conf.Host, conf.Port, conf.Database)
	case "mysql":
		conf, err := mysql.ParseDSN(connectionString)
		if err != nil {
			return "Failed to parse database connection string"
		}
		return fmt.Sprintf("Type: Mysql\nUser: %s, Password: %s\nAddress: %s\nDB Name: %s",
			conf.User, strings.Repeat("*", len(conf.Passwd)), conf.Addr, conf.DBName)
	}
	return "Not configured"
}

func (g *Gui) confirmationPage() tview.Primitive {
	form := tview.NewForm()
	cfg := g.config

	cache := "disabled"
	if cfg.Cache.Enabled() {
		cache = fmt.Sprintf("redis at %s (db %d), entries kept %d minutes", cfg.Cache.RedisAddr, cfg.Cache.RedisDB, cfg.Cache.TTL)
	}

	form.AddTextView("Database", describeDatabase(cfg.Database.DBType, cfg.Database.ConnectionString), 0, 0, true, true)
	form.AddTextView("HTTP", fmt.Sprintf("Listening on %s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port), 0, 0, true, true)
	form.AddTextView("Dataset Source", fmt.Sprintf("%s\nConcurrent requests: %d, Chunk size: %d",
		cfg.Ingest.BaseURL, cfg.Ingest.MaxConcurrency, cfg.Ingest.ChunkSize), 0, 0, true, true)
	form.AddTextView("Payload Cache", cache, 0, 0, true, true)
	form.AddTextView("Seed On Startup", fmt.Sprintf("%t", cfg.Misc.SeedOnStartup), 0, 0, true, true)

	form.AddButton("Save", g.Stop)
	form.AddButton("Edit", func() {
		g.pages.SwitchToPage("database-type")
	})

	return frame(form, "Review",
		"Check the settings below. Save writes config.json and starts Local Dex, Edit goes back to the first page and keeps what you entered.",
		"[red]ESC - exit[-:-:-:-] [yellow] Enter - submit [orange] (Shift+)Tab - switch buttons")
}
