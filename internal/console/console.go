// Package console drives one screen from line-oriented commands, for manual
// exercise of the list, filter and write paths against a live API.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
	"admin-datagrid/internal/screen"
)

const help = `commands:
  show                      render the current page
  search [text]             debounced search; no text clears it
  page first|prev|next|last navigate
  limit <n>                 change page size
  filter <facet> [value]    set or clear a facet
  from|to <YYYY-MM-DD|->    set or clear the date range
  sort <column> [+]         cycle sort; + keeps other sorted columns
  hide|unhide <column>      toggle column visibility
  select <id|all|none>      row selection
  view <id>                 print one row
  create <json>             create a record
  edit <id> <json>          update a record
  delete <id>               delete a record
  act <kind> [id] [k=v...]  run a side action
  retry                     re-issue the current request
  quit`

// Driver executes commands against one screen.
type Driver[R model.Record] struct {
	scr *screen.Screen[R]
	out io.Writer
}

func New[R model.Record](scr *screen.Screen[R], out io.Writer) *Driver[R] {
	return &Driver[R]{scr: scr, out: out}
}

// Run reads commands from in until EOF, quit or ctx is done. Command errors
// are printed and do not stop the loop.
func (d *Driver[R]) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(d.out, "%s> ", d.scr.Resource().Name)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		quit, err := d.Exec(ctx, sc.Text())
		if err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		fmt.Fprintf(d.out, "%s> ", d.scr.Resource().Name)
	}
	return sc.Err()
}

// Exec runs one command line.
func (d *Driver[R]) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(d.out, help)
	case "show":
		Render(d.out, d.scr.Snapshot(), d.scr.Columns())
	case "search":
		d.scr.Search(rest)
	case "page":
		err = d.page(args)
	case "limit":
		err = d.limit(args)
	case "filter":
		err = d.filter(args)
	case "from", "to":
		err = d.dateBound(cmd, args)
	case "sort":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: sort <column> [+]", ErrUsage)
		}
		err = d.scr.ToggleSort(args[0], len(args) > 1 && args[1] == "+")
	case "hide", "unhide":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: %s <column>", ErrUsage, cmd)
		}
		err = d.scr.SetColumnVisible(args[0], cmd == "unhide")
	case "select":
		err = d.selectRows(args)
	case "view":
		err = d.view(args)
	case "create":
		err = d.create(ctx, rest)
	case "edit":
		err = d.edit(ctx, rest)
	case "delete":
		err = d.remove(ctx, args)
	case "act":
		err = d.act(ctx, args)
	case "retry":
		d.scr.Retry()
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return false, err
}

var pageActions = map[string]pagination.Action{
	"first": pagination.First,
	"prev":  pagination.Previous,
	"next":  pagination.Next,
	"last":  pagination.Last,
}

func (d *Driver[R]) page(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: page first|prev|next|last", ErrUsage)
	}
	action, ok := pageActions[args[0]]
	if !ok {
		action = pagination.Action(args[0])
	}
	return d.scr.Navigate(action)
}

func (d *Driver[R]) limit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: limit <n>", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: limit <n>", ErrUsage)
	}
	return d.scr.SetPageSize(n)
}

func (d *Driver[R]) filter(args []string) error {
	switch len(args) {
	case 1:
		return d.scr.OnQueryChange(query.FacetTo(args[0], ""))
	case 2:
		return d.scr.OnQueryChange(query.FacetTo(args[0], args[1]))
	}
	return fmt.Errorf("%w: filter <facet> [value]", ErrUsage)
}

func (d *Driver[R]) dateBound(which string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s <YYYY-MM-DD|->", ErrUsage, which)
	}
	field := query.Clear[query.Date]()
	if args[0] != "-" {
		date, err := query.ParseDate(args[0])
		if err != nil {
			return err
		}
		field = query.Set(date)
	}
	if which == "from" {
		return d.scr.OnQueryChange(query.Patch{StartDate: field})
	}
	return d.scr.OnQueryChange(query.Patch{EndDate: field})
}

func (d *Driver[R]) selectRows(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: select <id|all|none>", ErrUsage)
	}
	switch args[0] {
	case "all":
		d.scr.SelectPage()
	case "none":
		d.scr.ClearSelection()
	default:
		if _, err := d.row(args[0]); err != nil {
			return err
		}
		d.scr.SelectRow(args[0], true)
	}
	return nil
}

func (d *Driver[R]) view(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: view <id>", ErrUsage)
	}
	row, err := d.row(args[0])
	if err != nil {
		return err
	}
	if err := d.scr.OpenDialog(model.KindView, row); err != nil {
		return err
	}
	defer d.scr.CloseDialog()

	b, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, string(b))
	return nil
}

func (d *Driver[R]) create(ctx context.Context, raw string) error {
	payload, err := jsonPayload(raw)
	if err != nil {
		return err
	}
	if err := d.scr.OpenCreate(); err != nil {
		return err
	}
	return d.submit(ctx, dialog.KindCreate, payload)
}

func (d *Driver[R]) edit(ctx context.Context, rest string) error {
	id, raw, ok := strings.Cut(rest, " ")
	if !ok {
		return fmt.Errorf("%w: edit <id> <json>", ErrUsage)
	}
	payload, err := jsonPayload(raw)
	if err != nil {
		return err
	}
	row, err := d.row(id)
	if err != nil {
		return err
	}
	if err := d.scr.OpenDialog(dialog.KindUpdate, row); err != nil {
		return err
	}
	return d.submit(ctx, dialog.KindUpdate, payload)
}

func (d *Driver[R]) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", ErrUsage)
	}
	row, err := d.row(args[0])
	if err != nil {
		return err
	}
	if err := d.scr.OpenDialog(dialog.KindDelete, row); err != nil {
		return err
	}
	return d.submit(ctx, dialog.KindDelete, nil)
}

// submit leaves a failed create or update dialog open only for the duration
// of the command; the console has no form to return to.
func (d *Driver[R]) submit(ctx context.Context, kind dialog.Kind, payload any) error {
	err := d.scr.Submit(ctx, kind, payload)
	if err != nil {
		d.scr.CloseDialog()
	}
	return err
}

func (d *Driver[R]) act(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: act <kind> [id] [k=v...]", ErrUsage)
	}
	kind := dialog.Kind(args[0])
	a, ok := d.scr.Resource().Action(kind)
	if !ok {
		return fmt.Errorf("%w: %s", screen.ErrNotAllowed, kind)
	}

	args = args[1:]
	var row *R
	if a.Row {
		if len(args) == 0 {
			return fmt.Errorf("%w: act %s <id>", ErrUsage, kind)
		}
		r, err := d.row(args[0])
		if err != nil {
			return err
		}
		row, args = r, args[1:]
	}

	input := screen.Input{}
	for _, kv := range args {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: parameters are k=v, got %q", ErrUsage, kv)
		}
		input[k] = v
	}

	body, err := d.scr.Act(ctx, kind, row, input)
	if err != nil {
		return err
	}
	if len(body) > 0 && !json.Valid(body) {
		d.out.Write(body)
	}
	return nil
}

func (d *Driver[R]) row(id string) (*R, error) {
	for _, r := range d.scr.Snapshot().Rows {
		if r.RecordID() == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}

func jsonPayload(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrUsage)
	}
	return json.RawMessage(raw), nil
}
