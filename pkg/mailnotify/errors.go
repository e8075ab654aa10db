package mailnotify

import "errors"

var (
	ErrInvalidCatalog = errors.New("mailnotify: invalid template catalog")
	ErrNilListener    = errors.New("mailnotify: nil listener")
)
