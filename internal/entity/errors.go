package entity

import "errors"

var (
	// ErrNotFound - записи нет либо она принадлежит другому директору,
	// снаружи эти случаи неразличимы
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials - одна ошибка и для неизвестного email,
	// и для неверного пароля
	ErrInvalidCredentials = errors.New("invalid email or password")
)
