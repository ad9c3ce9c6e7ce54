package errs

import (
	"errors"
	"fmt"
)

// ErrNotConnected Хранилище используется до вызова Connect (или после Close).
var ErrNotConnected = errors.New("хранилище не подключено")

// ErrInvalidConfig Кастомная ошибка, сообщающая о неверной или отсутствующей настройке.
type ErrInvalidConfig struct {
	Key    string
	Reason string
	Err    error
}

func (ic *ErrInvalidConfig) Error() string {
	if ic.Err != nil {
		return fmt.Sprintf("Неверная настройка %s: %s. Ошибка: %v", ic.Key, ic.Reason, ic.Err)
	}

	return fmt.Sprintf("Неверная настройка %s: %s", ic.Key, ic.Reason)
}

func (ic *ErrInvalidConfig) Unwrap() error {
	return ic.Err
}

func NewErrInvalidConfig(key string, reason string, err error) *ErrInvalidConfig {
	return &ErrInvalidConfig{
		Key:    key,
		Reason: reason,
		Err:    err,
	}
}

// ErrStorageUnavailable Кастомная ошибка, сообщающая о том, что хранилище недоступно.
type ErrStorageUnavailable struct {
	Backend string
	Err     error
}

func (su *ErrStorageUnavailable) Error() string {
	return fmt.Sprintf("Хранилище %s недоступно. Ошибка: %v", su.Backend, su.Err)
}

func (su *ErrStorageUnavailable) Unwrap() error {
	return su.Err
}

func NewErrStorageUnavailable(backend string, err error) *ErrStorageUnavailable {
	if err == nil {
		err = fmt.Errorf("нет соединения")
	}

	return &ErrStorageUnavailable{
		Backend: backend,
		Err:     err,
	}
}
