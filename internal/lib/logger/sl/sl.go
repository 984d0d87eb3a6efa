// Package sl carries shared slog attribute helpers.
package sl

import "log/slog"

// Err renders an error as a structured "error" attribute.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
