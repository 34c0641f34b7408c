// Package sl содержит мелкие помощники для структурированного логирования slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки,
// чтобы ошибки во всех логах выглядели одинаково.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
