package screen

import (
	"context"
	"fmt"
	"strings"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/mutation"
	"admin-datagrid/internal/remote"
)

type write func(ctx context.Context) (remote.Envelope, error)

// Submit performs the write of the open dialog and reports the outcome as a
// notice. Delete and row-action confirmations close whatever the outcome;
// create, update and prompts stay open on failure so input can be fixed.
func (s *Screen[R]) Submit(ctx context.Context, kind dialog.Kind, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", mutation.ErrPanic, r)
			s.deps.Logger.Errorf(ctx, "screen.Submit %s recovered: %v", kind, r)
			s.report(ctx, remote.Envelope{}, "", err)
		}
	}()

	state, row, session := s.dialog.Session()
	if state.Kind() != kind || kind == dialog.KindNone {
		return fmt.Errorf("%w: open %q, submitted %q", ErrDialogMismatch, state.Kind(), kind)
	}

	w, closeAlways, fallback, err := s.writeFor(kind, row, payload)
	if err != nil {
		return err
	}

	var env remote.Envelope
	err = s.deps.Coordinator.Execute(ctx, s.orch.Keys(), func(ctx context.Context) error {
		var werr error
		env, werr = w(ctx)
		return werr
	})
	if err == nil || closeAlways {
		s.dialog.CloseSession(session)
	}
	s.report(ctx, env, fallback, err)
	s.publish()
	return err
}

func (s *Screen[R]) writeFor(kind dialog.Kind, row *R, payload any) (w write, closeAlways bool, fallback string, err error) {
	api, route := s.deps.API, s.res.Route
	switch kind {
	case dialog.KindCreate:
		if payload == nil {
			return nil, false, "", ErrPayloadRequired
		}
		return func(ctx context.Context) (remote.Envelope, error) {
			return api.Create(ctx, route, payload)
		}, false, s.res.Name + " created", nil

	case dialog.KindUpdate:
		if payload == nil {
			return nil, false, "", ErrPayloadRequired
		}
		id := (*row).RecordID()
		return func(ctx context.Context) (remote.Envelope, error) {
			return api.Update(ctx, route, id, payload)
		}, false, s.res.Name + " updated", nil

	case dialog.KindDelete:
		id := (*row).RecordID()
		return func(ctx context.Context) (remote.Envelope, error) {
			return api.Delete(ctx, route, id)
		}, true, s.res.Name + " deleted", nil
	}

	a, ok := s.res.Action(kind)
	if !ok || !a.Mutates {
		return nil, false, "", fmt.Errorf("%w: submit %s", ErrNotAllowed, kind)
	}
	input, _ := payload.(Input)
	w, err = s.actionWrite(a, row, input)
	if err != nil {
		return nil, false, "", err
	}
	return w, a.Row, actionDone(a), nil
}

func (s *Screen[R]) actionWrite(a model.Action, row *R, input Input) (write, error) {
	if a.Row && row == nil {
		return nil, fmt.Errorf("%w: %s", dialog.ErrRowRequired, a.Kind)
	}
	id := ""
	if row != nil {
		id = (*row).RecordID()
	}
	q, err := actionQuery(a, s.currentParams(), input)
	if err != nil {
		return nil, err
	}
	api, path := s.deps.API, a.URL(s.res.Route, id)
	return func(ctx context.Context) (remote.Envelope, error) {
		return api.Do(ctx, a.Method, path, q, nil)
	}, nil
}

// Act runs a side action directly, without a dialog. Mutating actions go
// through the coordinator; the raw response body is returned, which is how
// exports are read.
func (s *Screen[R]) Act(ctx context.Context, kind dialog.Kind, row *R, input Input) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", mutation.ErrPanic, r)
			s.deps.Logger.Errorf(ctx, "screen.Act %s recovered: %v", kind, r)
			s.report(ctx, remote.Envelope{}, "", err)
		}
	}()

	a, ok := s.res.Action(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, kind)
	}
	w, err := s.actionWrite(a, row, input)
	if err != nil {
		return nil, err
	}

	var env remote.Envelope
	run := func(ctx context.Context) error {
		var werr error
		env, werr = w(ctx)
		return werr
	}
	if a.Mutates {
		err = s.deps.Coordinator.Execute(ctx, s.orch.Keys(), run)
	} else {
		err = run(ctx)
	}

	s.report(ctx, env, actionDone(a), err)
	s.publish()
	if err != nil {
		return nil, err
	}
	return env.Raw, nil
}

func actionDone(a model.Action) string {
	name := strings.ReplaceAll(string(a.Kind), "-", " ")
	return strings.ToUpper(name[:1]) + name[1:] + " completed"
}
