// Package conversation drives the staged add/edit dialogs of an admin.
//
// Each admin identity has its own session.State. Valid input advances the
// stage through a looplab/fsm transition table; invalid input leaves the
// stage untouched so the caller can re-prompt.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"telegram-shift-bot/internal/models"
	"telegram-shift-bot/internal/service"
	"telegram-shift-bot/internal/session"
)

// Both patterns are anchored at the start only; trailing text is ignored and
// hours/minutes are not range checked. Handles may use any Unicode letter or
// digit, which \w alone would not allow.
var (
	timeRangeRx = regexp.MustCompile(`^(\d{2}:\d{2})-(\d{2}:\d{2})`)
	usernameRx  = regexp.MustCompile(`^@([\p{L}\p{N}_]+)`)
)

const stateIdle = "idle"

const (
	eventAdd      = "add"
	eventEdit     = "edit"
	eventTime     = "time"
	eventUsername = "username"
	eventCancel   = "cancel"
)

var allStates = []string{
	stateIdle,
	string(models.StageWaitingTime),
	string(models.StageWaitingUsername),
	string(models.StageWaitingTimeEdit),
	string(models.StageWaitingUsernameEdit),
}

var transitions = fsm.Events{
	{Name: eventAdd, Src: allStates, Dst: string(models.StageWaitingTime)},
	{Name: eventEdit, Src: allStates, Dst: string(models.StageWaitingTimeEdit)},
	{Name: eventTime, Src: []string{string(models.StageWaitingTime)}, Dst: string(models.StageWaitingUsername)},
	{Name: eventTime, Src: []string{string(models.StageWaitingTimeEdit)}, Dst: string(models.StageWaitingUsernameEdit)},
	{Name: eventUsername, Src: []string{string(models.StageWaitingUsername), string(models.StageWaitingUsernameEdit)}, Dst: stateIdle},
	{Name: eventCancel, Src: allStates, Dst: stateIdle},
}

type ResultKind int

const (
	ResultNoSession ResultKind = iota
	ResultInvalidTime
	ResultInvalidUsername
	ResultTimeAccepted
	ResultShiftAdded
	ResultShiftUpdated
	ResultShiftNotFound
)

// Result describes what an input did. Shift carries the accepted interval
// (ResultTimeAccepted) or the saved shift (ResultShiftAdded/Updated).
// Schedule is the full stored schedule after an add.
type Result struct {
	Kind     ResultKind
	Stage    models.Stage
	Shift    models.Shift
	Schedule []models.Shift
}

type Flow struct {
	sessions session.Store
	shifts   *service.Shifts
	log      *zap.Logger
}

func New(sessions session.Store, shifts *service.Shifts, log *zap.Logger) *Flow {
	return &Flow{sessions: sessions, shifts: shifts, log: log}
}

// Stage returns the admin's current stage, StageNone without a session.
func (f *Flow) Stage(admin int64) models.Stage {
	st, _ := f.sessions.Get(admin)
	return st.Stage
}

// StartAdd opens the add dialog, replacing any pending one.
func (f *Flow) StartAdd(ctx context.Context, admin int64) error {
	next, err := f.advance(ctx, f.Stage(admin), eventAdd)
	if err != nil {
		return err
	}
	f.sessions.Put(admin, session.State{Stage: next})
	f.log.Info("add flow started", zap.Int64("admin", admin))
	return nil
}

// StartEdit opens the edit dialog for shiftID. A missing shift returns
// service.ErrShiftNotFound and leaves the session as it was.
func (f *Flow) StartEdit(ctx context.Context, admin int64, shiftID int) (models.Shift, error) {
	shift, err := f.shifts.Get(ctx, shiftID)
	if err != nil {
		return models.Shift{}, err
	}

	next, err := f.advance(ctx, f.Stage(admin), eventEdit)
	if err != nil {
		return models.Shift{}, err
	}
	f.sessions.Put(admin, session.State{Stage: next, ShiftID: shiftID})
	f.log.Info("edit flow started", zap.Int64("admin", admin), zap.Int("shift", shiftID))
	return shift, nil
}

// Cancel drops the admin's session, if any.
func (f *Flow) Cancel(ctx context.Context, admin int64) {
	if _, err := f.advance(ctx, f.Stage(admin), eventCancel); err != nil {
		f.log.Warn("cancel transition failed", zap.Int64("admin", admin), zap.Error(err))
	}
	f.sessions.Clear(admin)
}

// Input feeds free text into the admin's pending dialog.
func (f *Flow) Input(ctx context.Context, admin int64, text string) (Result, error) {
	text = strings.TrimSpace(text)

	st, ok := f.sessions.Get(admin)
	if !ok || st.Stage == models.StageNone {
		return Result{Kind: ResultNoSession}, nil
	}

	log := f.log.With(zap.Int64("admin", admin), zap.String("stage", string(st.Stage)))

	switch st.Stage {
	case models.StageWaitingTime, models.StageWaitingTimeEdit:
		m := timeRangeRx.FindStringSubmatch(text)
		if m == nil {
			log.Info("invalid time range", zap.String("input", text))
			return Result{Kind: ResultInvalidTime, Stage: st.Stage}, nil
		}

		next, err := f.advance(ctx, st.Stage, eventTime)
		if err != nil {
			return Result{}, err
		}
		st.Stage, st.StartTime, st.EndTime = next, m[1], m[2]
		f.sessions.Put(admin, st)

		log.Info("time range accepted", zap.String("interval", m[1]+"-"+m[2]))
		return Result{
			Kind:  ResultTimeAccepted,
			Stage: next,
			Shift: models.Shift{ID: st.ShiftID, StartTime: st.StartTime, EndTime: st.EndTime},
		}, nil

	case models.StageWaitingUsername, models.StageWaitingUsernameEdit:
		m := usernameRx.FindStringSubmatch(text)
		if m == nil {
			log.Info("invalid username", zap.String("input", text))
			return Result{Kind: ResultInvalidUsername, Stage: st.Stage}, nil
		}
		return f.finish(ctx, admin, st, m[1], log)
	}

	return Result{}, fmt.Errorf("unknown stage %q", st.Stage)
}

func (f *Flow) finish(ctx context.Context, admin int64, st session.State, username string, log *zap.Logger) (Result, error) {
	next, err := f.advance(ctx, st.Stage, eventUsername)
	if err != nil {
		return Result{}, err
	}

	if st.Stage.Editing() {
		shift, err := f.shifts.Update(ctx, st.ShiftID, username, st.StartTime, st.EndTime)
		if errors.Is(err, service.ErrShiftNotFound) {
			f.sessions.Clear(admin)
			log.Info("edited shift no longer exists", zap.Int("shift", st.ShiftID))
			return Result{Kind: ResultShiftNotFound, Stage: next, Shift: models.Shift{ID: st.ShiftID}}, nil
		}
		if err != nil {
			return Result{}, err
		}
		f.sessions.Clear(admin)
		return Result{Kind: ResultShiftUpdated, Stage: next, Shift: shift}, nil
	}

	shift, err := f.shifts.Add(ctx, username, st.StartTime, st.EndTime)
	if err != nil {
		return Result{}, err
	}
	f.sessions.Clear(admin)

	all, err := f.shifts.List(ctx)
	if err != nil {
		// the shift is saved; only the follow-up listing is lost
		log.Warn("reload after add failed", zap.Error(err))
	}
	return Result{Kind: ResultShiftAdded, Stage: next, Shift: shift, Schedule: all}, nil
}

// advance runs one transition from stage. Firing an event that lands on the
// current state is not an error.
func (f *Flow) advance(ctx context.Context, stage models.Stage, event string) (models.Stage, error) {
	machine := fsm.NewFSM(stateOf(stage), transitions, fsm.Callbacks{})

	if err := machine.Event(ctx, event); err != nil {
		var same fsm.NoTransitionError
		if !errors.As(err, &same) {
			return stage, fmt.Errorf("%s from %s: %w", event, stateOf(stage), err)
		}
	}
	return stageOf(machine.Current()), nil
}

func stateOf(stage models.Stage) string {
	if stage == models.StageNone {
		return stateIdle
	}
	return string(stage)
}

func stageOf(state string) models.Stage {
	if state == stateIdle {
		return models.StageNone
	}
	return models.Stage(state)
}
