package logging

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

const previewRunes = 120

// LogText logs a clip event at INFO with its size, and at DEBUG a preview of
// up to 120 runes. Clip contents never reach INFO.
func LogText(event, text string, attrs ...any) {
	slog.Info(event, append(attrs, "bytes", len(text))...)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug(event+" (content)", "preview", Preview(text))
}

// Preview truncates text to 120 runes, marking the cut with an ellipsis.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	r := []rune(text)
	return string(r[:previewRunes]) + "…"
}
