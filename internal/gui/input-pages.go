package gui

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rivo/tview"
)

const (
	defaultSqliteFile = "local-dex.db"
	formIntro         = "Fill out the form below. Every field can be changed later in config.json"
)

var fileNameDenied = []rune{
	'\'', '$', '%', '@', '#', '!', ';', ':', '/', '*', '?', '|', '>', '<', '&', '\\',
}

func acceptPort(text string, last rune) bool {
	if !unicode.IsDigit(last) {
		return false
	}
	n, _ := strconv.Atoi(text)
	return n > 0 && n <= 65535
}

func acceptNumber(text string, last rune) bool {
	return unicode.IsDigit(last)
}

// SqliteConnectionString is the connection string used for a sqlite file.
func SqliteConnectionString(file string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", file)
}

// serverFields splits an existing mysql or postgres connection string into
// user, password, host, port and database name.
func serverFields(dbType, connectionString string) []string {
	fields := make([]string, 5)
	switch {
	case connectionString == "":
	case dbType == "postgres":
		if conf, err := pgx.ParseConfig(connectionString); err == nil {
			fields = []string{conf.User, conf.Password, conf.Host, strconv.Itoa(int(conf.Port)), conf.Database}
		}
	case dbType == "mysql":
		if conf, err := mysql.ParseDSN(connectionString); err == nil {
			host, port, _ := net.SplitHostPort(conf.Addr)
			fields = []string{conf.User, conf.Passwd, host, port, conf.DBName}
		}
	}
	return fields
}

// pingDatabase opens cfg through the same path the server uses and checks it
// answers within a few seconds.
func pingDatabase(cfg *models.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.DB().PingContext(ctx)
}

func (g *Gui) databaseConfigPage(dbType string) tview.Primitive {
	form := tview.NewForm()
	f := frame(form, "Configuring Database: "+dbType, formIntro, keysForm)

	var labels, values []string
	current := g.config.Database

	if dbType == "sqlite" {
		file := defaultSqliteFile
		if current.DBType == "sqlite" && strings.HasPrefix(current.ConnectionString, "file:") {
			name, _, _ := strings.Cut(strings.TrimPrefix(current.ConnectionString, "file:"), "?")
			if name != "" {
				file = name
			}
		}
		labels = []string{"File Name"}
		values = []string{file}
		form.AddInputField(labels[0], values[0], 30, func(_ string, last rune) bool {
			return !slices.Contains(fileNameDenied, last)
		}, func(text string) {
			values[0] = text
		})
	} else {
		labels = []string{"Username", "Password", "Host", "Port", "Database"}
		values = []string{"", "", "", "", ""}
		if current.DBType == dbType {
			values = serverFields(dbType, current.ConnectionString)
		}
		form.AddInputField(labels[0], values[0], 30, nil, func(text string) { values[0] = text })
		form.AddPasswordField(labels[1], values[1], 30, '*', func(text string) { values[1] = text })
		form.AddInputField(labels[2], values[2], 30, nil, func(text string) { values[2] = text })
		form.AddInputField(labels[3], values[3], 8, acceptPort, func(text string) { values[3] = text })
		form.AddInputField(labels[4], values[4], 30, nil, func(text string) { values[4] = text })
	}

	form.AddButton("Submit", func() {
		var errs []string
		for i, label := range labels {
			if values[i] == "" {
				errs = append(errs, label+": is required")
			}
		}
		if len(errs) > 0 {
			showErrors(f, formIntro, keysForm, errs)
			return
		}

		cfg := models.DatabaseConfig{DBType: dbType}
		switch dbType {
		case "sqlite":
			if _, err := os.Stat(values[0]); err != nil && !os.IsNotExist(err) {
				errs = append(errs, "File Name: "+err.Error())
			}
			cfg.ConnectionString = SqliteConnectionString(values[0])
		case "postgres":
			cfg.ConnectionString = fmt.Sprintf("postgres://%s:%s@%s/%s",
				url.QueryEscape(values[0]), url.QueryEscape(values[1]), net.JoinHostPort(values[2], values[3]), values[4])
		case "mysql":
			mc := mysql.NewConfig()
			mc.User = values[0]
			mc.Passwd = values[1]
			mc.Net = "tcp"
			mc.Addr = net.JoinHostPort(values[2], values[3])
			mc.DBName = values[4]
			mc.ParseTime = true
			cfg.ConnectionString = mc.FormatDSN()
		}

		if len(errs) == 0 {
			if err := pingDatabase(&cfg); err != nil {
				errs = append(errs, "Connection error: "+err.Error())
			}
		}
		if len(errs) > 0 {
			showErrors(f, formIntro, keysForm, errs)
			return
		}

		g.config.Database = cfg
		g.show("seed-config", g.seedSelection)
	})

	return f
}

func (g *Gui) ingestConfigPage() tview.Primitive {
	form := tview.NewForm()
	intro := "Where the dataset is downloaded from and how hard the source is hit. The defaults suit the public PokeAPI."
	f := frame(form, "Configuring Dataset Download", intro, keysForm)

	ingest := g.config.Ingest
	cache := g.config.Cache
	concurrency := strconv.Itoa(ingest.MaxConcurrency)
	chunkSize := strconv.Itoa(ingest.ChunkSize)
	ttl := strconv.Itoa(cache.TTL)

	form.AddInputField("Source URL", ingest.BaseURL, 50, nil, func(text string) { ingest.BaseURL = text })
	form.AddInputField("Concurrent Requests", concurrency, 6, acceptNumber, func(text string) { concurrency = text })
	form.AddInputField("Rows Per Transaction", chunkSize, 6, acceptNumber, func(text string) { chunkSize = text })
	form.AddTextView("Cache Info", `Raw responses can be kept in redis so a re-run after a failure does not download everything again.
Leave the address empty to run without a cache.`, 0, 0, true, true)
	form.AddInputField("Redis Address", cache.RedisAddr, 30, nil, func(text string) { cache.RedisAddr = text })
	form.AddPasswordField("Redis Password", cache.RedisPassword, 30, '*', func(text string) { cache.RedisPassword = text })
	form.AddInputField("Cache Minutes", ttl, 8, acceptNumber, func(text string) { ttl = text })

	form.AddButton("Submit", func() {
		var errs []string
		var err error

		if ingest.MaxConcurrency, err = strconv.Atoi(concurrency); err != nil {
			errs = append(errs, "Concurrent Requests: must be a number")
		}
		if ingest.ChunkSize, err = strconv.Atoi(chunkSize); err != nil {
			errs = append(errs, "Rows Per Transaction: must be a number")
		}
		if cache.TTL, err = strconv.Atoi(ttl); err != nil && cache.RedisAddr != "" {
			errs = append(errs, "Cache Minutes: must be a number")
		}

		if len(errs) == 0 {
			for _, v := range []any{ingest, cache} {
				if err := g.validate.Struct(v); err != nil {
					errs = append(errs, err.Error())
				}
			}
		}
		if len(errs) > 0 {
			showErrors(f, intro, keysForm, errs)
			return
		}

		g.config.Ingest = ingest
		g.config.Cache = cache
		g.config.ApplyDefaults()
		g.show("http-config", g.httpConfigPage)
	})

	return f
}

func (g *Gui) httpConfigPage() tview.Primitive {
	form := tview.NewForm()
	intro := formIntro
	f := frame(form, "Configuring HTTP", intro, keysForm)

	addr := g.config.HTTP.ListeningAddr
	port := strconv.Itoa(g.config.HTTP.Port)

	redraw := func(errs []string) {
		showErrors(f, intro, keysForm, errs)
		if addr == "127.0.0.1" || addr == "localhost" || addr == "::1" {
			f.AddText(addr+" only accepts connections from this machine", true, tview.AlignLeft, tcell.ColorRed)
		}
	}
	redraw(nil)

	choices := []string{"0.0.0.0"}
	addrHelp := `0.0.0.0 listens on every address of this machine, which is what most setups want.
Picking a single address only makes sense when it is static, otherwise config.json has to be edited whenever it changes.`

	if ifaces, err := net.InterfaceAddrs(); err != nil {
		addrHelp = "The addresses of this machine could not be listed, so only 0.0.0.0 is offered.\nError: " + err.Error()
	} else {
		for _, a := range ifaces {
			ip, _, _ := strings.Cut(a.String(), "/")
			if strings.HasPrefix(ip, "fe80") {
				continue
			}
			choices = append(choices, ip)
		}
	}

	selected := max(slices.Index(choices, addr), 0)

	form.AddTextView("Address Info", addrHelp, 0, 0, true, true)
	form.AddDropDown("Listening Address", choices, selected, func(option string, _ int) {
		addr = option
		redraw(nil)
	})
	form.AddTextView("Port Info", `The port must be between 1 and 65535. Ports below 1024 need root on most systems, 8080 is a safe choice.`, 0, 0, true, true)
	form.AddInputField("Port", port, 8, acceptPort, func(text string) { port = text })

	form.AddButton("Submit", func() {
		n, err := strconv.Atoi(port)
		if err != nil {
			redraw([]string{"Port: enter a number between 1 and 65535"})
			return
		}

		l, err := net.Listen("tcp", net.JoinHostPort(addr, port))
		if err != nil {
			redraw([]string{err.Error()})
			return
		}
		l.Close()

		g.config.HTTP = models.HTTPConfig{ListeningAddr: addr, Port: n}
		g.show("confirm", g.confirmationPage)
	})

	return f
}
