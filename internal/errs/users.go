package errs

import "fmt"

// ErrLoginIsTaken Кастомная ошибка, сообщающая, что логин уже был занят.
type ErrLoginIsTaken struct {
	Login string
	Err   error
}

func (lt *ErrLoginIsTaken) Error() string {
	return fmt.Sprintf("Пользователь с логином `%s` уже существует. Ошибка: %v", lt.Login, lt.Err)
}

func (lt *ErrLoginIsTaken) Unwrap() error {
	return lt.Err
}

func NewErrLoginIsTaken(login string, err error) *ErrLoginIsTaken {
	if err == nil {
		err = fmt.Errorf("дубликат логина")
	}

	return &ErrLoginIsTaken{
		Login: login,
		Err:   err,
	}
}

// ErrValidation Кастомная ошибка, сообщающая о невалидных данных пользователя.
type ErrValidation struct {
	Field  string
	Reason string
}

func (v *ErrValidation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

func NewErrValidation(field string, reason string) *ErrValidation {
	return &ErrValidation{
		Field:  field,
		Reason: reason,
	}
}

// ErrUserNotFound Кастомная ошибка, сообщающая о том, что пользователь не найден.
type ErrUserNotFound struct {
	ID  string
	Err error
}

func (nf *ErrUserNotFound) Error() string {
	return fmt.Sprintf("Пользователь %s не найден. Ошибка: %v", nf.ID, nf.Err)
}

func (nf *ErrUserNotFound) Unwrap() error {
	return nf.Err
}

func NewErrUserNotFound(id string, err error) *ErrUserNotFound {
	if err == nil {
		err = fmt.Errorf("пользователь не найден")
	}

	return &ErrUserNotFound{
		ID:  id,
		Err: err,
	}
}
