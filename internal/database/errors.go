package database

import "errors"

// ErrNotFound возвращается, когда запись отсутствует или принадлежит другому пользователю.
var ErrNotFound = errors.New("record not found")

// ErrValidation возвращается при пустом заголовке или тексте заметки.
var ErrValidation = errors.New("validation failed")
