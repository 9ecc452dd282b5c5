package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/idilsaglam/board/internal/auth"
	"github.com/idilsaglam/board/internal/config"
	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
	"github.com/idilsaglam/board/internal/store/jsonstore"
	"github.com/idilsaglam/board/internal/tui"
	"github.com/idilsaglam/board/internal/ui"
	"github.com/idilsaglam/board/internal/validate"
	"github.com/idilsaglam/board/internal/ws"
)

// Options carries root flags and the dependencies built by main.
type Options struct {
	Group bool // list grouped by active/finished

	Out, Err io.Writer

	Config *config.Config
	Board  *state.Projects
	Auth   *auth.Store

	// Autosaved is set when a jsonstore observer is already subscribed to
	// Board. Otherwise commands that change the board save it themselves.
	Autosaved bool
	// AutosaveErr reports the observer's latest save error, if any.
	AutosaveErr func() error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	if opt.Board == nil {
		opt.Board = state.NewProjects()
	}

	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "board", "ui":
		return doBoard(opt)

	case "ls":
		return doList(opt)

	case "add":
		if len(a) != 3 {
			ui.Fail(opt.Err, "usage: board add <title> <description> <people>")
			return 2
		}
		return doAdd(opt, a[0], a[1], a[2])

	case "move":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: board move <id> <active|finished>")
			return 2
		}
		return doMove(opt, a[0], a[1])

	case "serve":
		return doServe(opt)

	case "auth":
		return doAuth(opt, a)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `board - track projects from active to finished

Usage:
  board [flags] <subcommand> [args]

Subcommands:
  board, ui                          Open the interactive board
  ls                                 List projects
  add <title> <description> <people> Add an active project
  move <id> <active|finished>        Move a project (id may be a unique prefix)
  serve                              Serve the board over HTTP and WebSocket
  auth login <token>                 Save the API token used by serve
  auth logout                        Forget the saved token
  auth status                        Show where the token comes from

Flags:
  -config <path>   YAML config file (default board.yaml)
  -data <path>     Project file, overrides data.file
  -group           Group ls output by status (default true)

Examples:
  board add "Website" "Rebuild the landing page" 3
  board ls
  board move 3f2a finished
`)
}

// -------------- subcommand impls ----------------

func doBoard(opt Options) int {
	if err := tui.Run(opt.Board, opt.Config.Validation); err != nil {
		ui.Fail(opt.Err, err.Error())
		return 1
	}
	if err := persist(opt); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	return 0
}

func doList(opt Options) int {
	items := opt.Board.Snapshot()

	lines := ui.Header(items)
	lines = append(lines, "")
	lines = append(lines, ui.BoardLines(items, opt.Group)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: move with `board move <id> finished`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doAdd(opt Options, title, description, people string) int {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	n, err := validate.FormInput(title, description, people, opt.Config.Validation)
	if err != nil {
		for _, msg := range validate.Messages(err) {
			ui.Fail(opt.Err, msg)
		}
		return 2
	}

	opt.Board.AddProject(title, description, n)
	if err := persist(opt); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("added %q", title))
	return 0
}

func doMove(opt Options, idArg, statusArg string) int {
	st, err := model.ParseStatus(statusArg)
	if err != nil {
		ui.Fail(opt.Err, "move: "+err.Error())
		return 2
	}
	id, err := opt.Board.ResolveID(idArg)
	if err != nil {
		ui.Fail(opt.Err, "move: "+err.Error())
		if errors.Is(err, state.ErrAmbiguous) {
			ui.Hint(opt.Err, "Hint: type more of the id")
		} else {
			ui.Hint(opt.Err, "Hint: run `board ls` to see project ids")
		}
		return 2
	}

	p, _ := opt.Board.Find(id)
	if p.Status == st {
		ui.Hint(opt.Out, fmt.Sprintf("%q is already %s", p.Title, st))
		return 0
	}
	opt.Board.MoveProject(id, st)
	if err := persist(opt); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("moved %q to %s", p.Title, st))
	return 0
}

func doServe(opt Options) int {
	token := ""
	if opt.Auth != nil {
		ti, err := opt.Auth.GetToken()
		switch {
		case err == nil:
			token = ti.Token
		case errors.Is(err, auth.ErrNoToken):
			ui.Hint(opt.Err, "no API token set; the server accepts every request (see `board auth login`)")
		default:
			ui.Fail(opt.Err, "auth: "+err.Error())
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broadcaster := ws.NewBroadcaster(opt.Board)
	defer broadcaster.Close()

	srv := ws.NewServer(opt.Board, broadcaster, opt.Config.Validation, opt.Config.Server.AllowedOrigins, token)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	if err := ws.ListenAndServe(ctx, opt.Config.Addr(), mux); err != nil {
		ui.Fail(opt.Err, "serve: "+err.Error())
		return 1
	}
	if err := persist(opt); err != nil {
		ui.Fail(opt.Err, "save: "+err.Error())
		return 1
	}
	return 0
}

func doAuth(opt Options, a []string) int {
	if opt.Auth == nil {
		ui.Fail(opt.Err, "auth: no credential store")
		return 1
	}
	if len(a) == 0 {
		ui.Fail(opt.Err, "usage: board auth <login <token>|logout|status>")
		return 2
	}

	switch a[0] {
	case "login":
		if len(a) != 2 {
			ui.Fail(opt.Err, "usage: board auth login <token>")
			return 2
		}
		if err := opt.Auth.SetToken(a[1]); err != nil {
			ui.Fail(opt.Err, "login: "+err.Error())
			return 1
		}
		ui.OK(opt.Out, "token saved")
		return 0

	case "logout":
		if err := opt.Auth.DeleteToken(); err != nil {
			ui.Fail(opt.Err, "logout: "+err.Error())
			return 1
		}
		ui.OK(opt.Out, "token removed")
		return 0

	case "status":
		ti, err := opt.Auth.GetToken()
		if errors.Is(err, auth.ErrNoToken) {
			ui.Hint(opt.Out, "not logged in")
			return 0
		}
		if err != nil {
			ui.Fail(opt.Err, "status: "+err.Error())
			return 1
		}
		ui.OK(opt.Out, fmt.Sprintf("token %s (from %s)", mask(ti.Token), ti.Source))
		return 0
	}

	ui.Fail(opt.Err, "unknown auth command: "+a[0])
	return 2
}

// -------------- helpers --------------

func persist(opt Options) error {
	if opt.Autosaved {
		if opt.AutosaveErr != nil {
			return opt.AutosaveErr()
		}
		return nil
	}
	return jsonstore.Save(opt.Config.Data.File, opt.Board.Snapshot())
}

func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
