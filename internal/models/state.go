package models

// Stage is a step of a multi-step admin conversation. The zero value means
// there is no active session.
type Stage string

const (
	StageNone                Stage = ""
	StageWaitingTime         Stage = "waiting_time"
	StageWaitingUsername     Stage = "waiting_username"
	StageWaitingTimeEdit     Stage = "waiting_time_edit"
	StageWaitingUsernameEdit Stage = "waiting_username_edit"
)

// Editing reports whether the stage belongs to the edit flow.
func (s Stage) Editing() bool {
	return s == StageWaitingTimeEdit || s == StageWaitingUsernameEdit
}
