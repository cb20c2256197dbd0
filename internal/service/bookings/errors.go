package bookings

import "errors"

var (
	// ErrSlotConflict возвращается, когда запрошенный интервал уже не свободен целиком
	ErrSlotConflict = errors.New("slot conflict")

	// ErrDuplicateActiveBooking возвращается, когда у клиента уже есть активная запись
	ErrDuplicateActiveBooking = errors.New("customer already has an active booking")

	// ErrNotFound возвращается, когда запись или слот не найдены
	// Чаще всего означает, что запись уже обработана
	ErrNotFound = errors.New("booking not found")

	// ErrForbidden возвращается, когда у пользователя нет прав на запись
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStopped возвращается, когда движок бронирования не запущен или остановлен
	ErrStopped = errors.New("booking engine is stopped")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
