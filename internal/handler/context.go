package handler

type ContextKey string

var (
	SubCtxKey       ContextKey = "sub"
	CaregiverCtx    ContextKey = "caregiver"
	ShiftCtx        ContextKey = "shift"
	CareLogEntryCtx ContextKey = "careLogEntry"
)
