// Package handle приводит пользовательский ввод к каноническому хэндлу профиля.
//
// Принимается как «голый» хэндл (с @ или без), так и вставленная ссылка на
// профиль instagram.com. Ошибка разбора ссылки не фатальна: ввод в этом случае
// обрабатывается как обычная строка.
package handle

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyInput возвращается для пустого ввода или ввода без полезной части.
var ErrEmptyInput = errors.New("empty input")

// Normalize возвращает канонический хэндл: без @, без пробелов по краям,
// без схемы и хоста. Идемпотентна: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, error) {
	const op = "handle.Normalize"

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}

	if strings.Contains(trimmed, "instagram.com") {
		if h, ok := fromProfileURL(trimmed); ok {
			return h, nil
		}
		// некорректная ссылка разбирается как обычная строка
	}

	result := strings.TrimSpace(strings.TrimPrefix(trimmed, "@"))
	if result == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}
	return result, nil
}

// fromProfileURL достает хэндл из ссылки на профиль: первый непустой сегмент пути.
func fromProfileURL(s string) (string, bool) {
	target := s
	if !strings.HasPrefix(s, "http") {
		target = "https://" + s
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", false
	}
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			return segment, true
		}
	}
	return "", false
}
