package middleware

type contextKey string

const (
	contextKeyCorsHeaders contextKey = "middlewareCorsHeaders"
	contextKeyFlags       contextKey = "middlewareFlags"
)
