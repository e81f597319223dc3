package core

// Logger is any service that can log application events.
//
// args may hold errors, extra data (map[string]interface{}) and at most one session.Profile
// identifying the logged-in user.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
