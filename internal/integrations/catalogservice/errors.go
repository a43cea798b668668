package catalogservice

import "errors"

var (
	// ErrMenuNotFound возвращается, когда меню с запрошенным ID не существует
	ErrMenuNotFound = errors.New("catalogservice client: menu not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
