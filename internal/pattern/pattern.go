// Package pattern реализует накопление и фиксацию цифрового кода блокировки.
package pattern

import (
	"errors"
	"strings"
)

// MinLength — минимальная длина кода блокировки.
const MinLength = 4

// ErrTooShort возвращается при попытке зафиксировать слишком короткий код.
var ErrTooShort = errors.New("pattern must be at least 4 digits")

// AppendDigit добавляет цифру к набираемому коду.
// Повторное нажатие уже набранной цифры игнорируется.
func AppendDigit(pending string, digit byte) string {
	if digit < '0' || digit > '9' {
		return pending
	}
	if strings.IndexByte(pending, digit) >= 0 {
		return pending
	}
	return pending + string(digit)
}

// Commit фиксирует набранный код. Код короче MinLength отклоняется.
func Commit(pending string) (string, error) {
	if len(pending) < MinLength {
		return "", ErrTooShort
	}
	return pending, nil
}
