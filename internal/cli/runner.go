package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Makepad-fr/dayplan/internal/export"
	"github.com/Makepad-fr/dayplan/internal/model"
	"github.com/Makepad-fr/dayplan/internal/tasks"
	"github.com/Makepad-fr/dayplan/internal/tui"
	"github.com/Makepad-fr/dayplan/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options tune output behavior from root flags.
type Options struct {
	Store  *tasks.Store
	Out    io.Writer
	Err    io.Writer
	Group  bool // list grouped by pending/done
	Logger log.Logger

	// RunUI starts the interactive view; defaults to tui.Run.
	RunUI func(store *tasks.Store, logger log.Logger) error
}

type runner struct {
	Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = log.GetLogger()
	}
	if opt.RunUI == nil {
		opt.RunUI = tui.Run
	}
	r := &runner{Options: opt}

	if len(args) == 0 {
		r.PrintHelp()
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return ExitOK

	case "ls":
		return r.doList(a)

	case "add":
		if len(a) == 0 {
			ui.Fail(r.Err, "usage: dayplan add <text...>")
			return ExitUsage
		}
		return r.doAdd(strings.Join(a, " "))

	case "done", "toggle":
		id, code := r.parseID(cmd, a)
		if code != ExitOK {
			return code
		}
		return r.doToggle(id)

	case "rm":
		id, code := r.parseID(cmd, a)
		if code != ExitOK {
			return code
		}
		return r.doRemove(id)

	case "stats":
		return r.doStats()

	case "export":
		return r.doExport(a)

	case "ui":
		if err := r.RunUI(r.Store, r.Logger); err != nil {
			ui.Fail(r.Err, "ui: "+err.Error())
			return ExitError
		}
		return ExitOK
	}

	ui.Fail(r.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.Err)
	r.PrintHelp()
	return ExitUsage
}

func (r *runner) PrintHelp() {
	fmt.Fprint(r.Out, `dayplan - a small task list

Usage:
  dayplan [-conf file] [-group] [-theme name] <subcommand> [args]

Subcommands:
  ls [-filter all|completed|pending] [-search term]
                     List tasks
  add <text...>      Add a new task (text can be multiple words)
  done <id>          Toggle completed for the task with this id
  rm <id>            Delete the task with this id
  stats              Print total/completed/pending counts
  export [-format json|csv|pdf] [-o file] [-filter f] [-search term]
                     Export tasks (stdout unless -o is given)
  ui                 Interactive task list

Examples:
  dayplan add "Buy milk"
  dayplan ls -filter pending -search milk
  dayplan done 1760860800000
  dayplan export -format pdf -o tasks.pdf
`)
}

// -------------- subcommand impls ----------------

func (r *runner) parseID(cmd string, a []string) (int64, int) {
	if len(a) != 1 {
		ui.Fail(r.Err, fmt.Sprintf("usage: dayplan %s <id>", cmd))
		return 0, ExitUsage
	}
	id, err := strconv.ParseInt(a[0], 10, 64)
	if err != nil {
		ui.Fail(r.Err, cmd+": not a number: "+a[0])
		return 0, ExitUsage
	}
	return id, ExitOK
}

// viewFlags registers the -filter/-search pair shared by ls and export.
func viewFlags(fs *flag.FlagSet) (filter, search *string) {
	filter = fs.String("filter", "all", "all|completed|pending")
	search = fs.String("search", "", "case-insensitive substring")
	return
}

func (r *runner) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.Err)
	return fs
}

func (r *runner) doList(a []string) int {
	fs := r.newFlagSet("ls")
	filterName, search := viewFlags(fs)
	if err := fs.Parse(a); err != nil {
		return ExitUsage
	}
	filter, err := model.ParseFilter(*filterName)
	if err != nil {
		ui.Fail(r.Err, "ls: "+err.Error())
		return ExitUsage
	}

	items := r.Store.List(filter, *search)
	c := r.Store.Counts()
	th := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "My Tasks"),
		ui.C(th.Success, th.SymDone), c.Completed,
		ui.C(th.Pending, th.SymPending), c.Pending,
		ui.C(th.Accent, "Total"), c.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(c.Completed, c.Total, 28)))
	if filter != model.FilterAll || *search != "" {
		lines = append(lines, ui.C(th.Muted, describeView(filter, *search)))
	}
	lines = append(lines, "")

	if r.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, *search)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `dayplan add \"Buy milk\"`"))
	ui.Panel(r.Out, lines)
	return ExitOK
}

func (r *runner) doAdd(text string) int {
	t, ok := r.Store.Add(text)
	if !ok {
		ui.Fail(r.Err, "add: empty text")
		return ExitUsage
	}
	if r.saveFailed() {
		return ExitError
	}
	ui.OK(r.Out, fmt.Sprintf("added %d", t.ID))
	return ExitOK
}

func (r *runner) doToggle(id int64) int {
	if !r.Store.Toggle(id) {
		r.notFound(id)
		return ExitUsage
	}
	if r.saveFailed() {
		return ExitError
	}
	ui.OK(r.Out, "toggled")
	return ExitOK
}

func (r *runner) doRemove(id int64) int {
	if !r.Store.Delete(id) {
		r.notFound(id)
		return ExitUsage
	}
	if r.saveFailed() {
		return ExitError
	}
	ui.OK(r.Out, "removed")
	return ExitOK
}

func (r *runner) doStats() int {
	c := r.Store.Counts()
	fmt.Fprintf(r.Out, "Total: %d tasks\nCompleted: %d\nPending: %d\n", c.Total, c.Completed, c.Pending)
	return ExitOK
}

func (r *runner) doExport(a []string) int {
	fs := r.newFlagSet("export")
	format := fs.String("format", "json", strings.Join(export.Formats, "|"))
	out := fs.String("o", "", "output file (default stdout)")
	filterName, search := viewFlags(fs)
	if err := fs.Parse(a); err != nil {
		return ExitUsage
	}
	filter, err := model.ParseFilter(*filterName)
	if err != nil {
		ui.Fail(r.Err, "export: "+err.Error())
		return ExitUsage
	}

	b, err := export.New("My Tasks").Export(r.Store.List(filter, *search), *format)
	if err != nil {
		ui.Fail(r.Err, "export: "+err.Error())
		return ExitUsage
	}
	if *out == "" {
		_, _ = r.Out.Write(b)
		return ExitOK
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		ui.Fail(r.Err, "export: "+err.Error())
		return ExitError
	}
	ui.OK(r.Out, "exported to "+*out)
	return ExitOK
}

// A CLI invocation is one mutation, so a failed write means the change is lost.
func (r *runner) saveFailed() bool {
	if err := r.Store.SaveErr(); err != nil {
		ui.Fail(r.Err, "save: "+err.Error())
		return true
	}
	return false
}

func (r *runner) notFound(id int64) {
	ui.Fail(r.Err, fmt.Sprintf("no task with id %d", id))
	fmt.Fprintln(r.Err, ui.Dim("Hint: run `dayplan ls` to see task ids"))
}

// -------------- rendering helpers --------------

func describeView(f model.Filter, search string) string {
	s := "Showing: " + f.String()
	if search != "" {
		s += fmt.Sprintf(", matching %q", search)
	}
	return s
}

func flatLines(items []model.Task, search string) []string {
	th := ui.Current()
	if len(items) == 0 {
		out := []string{ui.C(th.Muted, "No tasks found")}
		if search != "" {
			out = append(out, ui.C(th.Muted, "Try a different search term"))
		}
		return out
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := th.BoxUnchecked
		color := th.Muted
		if it.Completed {
			box, color = th.BoxChecked, th.Success
		}
		text := it.Text
		if len([]rune(text)) > 80 {
			text = string([]rune(text)[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(strconv.FormatInt(it.ID, 10)), ui.C(color, box), text))
	}
	return out
}

func groupLines(items []model.Task) []string {
	var pend, done []model.Task
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	th := ui.Current()
	var lines []string
	lines = append(lines, ui.C(th.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, "")...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Accent, "Completed"))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, "")...)
	}
	return lines
}
