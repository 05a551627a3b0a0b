package core

// Logger is any service that can record application events.
// args may hold an error, a map[string]interface{} of fields, or the acting user.Account.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
