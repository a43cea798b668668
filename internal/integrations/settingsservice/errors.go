package settingsservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("settingsservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса настроек
	ErrInvalidResponse = errors.New("settingsservice client: invalid response")
)
