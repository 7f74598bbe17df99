package entities

import "errors"

// Базовые виды ошибок. Ошибки сервисов оборачивают их через %w,
// вызывающий код проверяет вид через errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrNotAssignedToDriver = errors.New("not assigned to driver")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidItem         = errors.New("invalid item")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrConflict            = errors.New("conflict")
)
