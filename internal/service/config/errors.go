package config

import "errors"

var (
	// ErrConfigInvalid возвращается, когда изменение нарушает инварианты расписания
	ErrConfigInvalid = errors.New("schedule config invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
