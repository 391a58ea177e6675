package handler

type ContextKey string

var (
	SessionCtx ContextKey = "session"
	JobCtx     ContextKey = "job"
)
