package storage

import "context"

//go:generate mockgen -destination=mocks/storage_mock.go -package=mocks . Storage

// Storage Интерфейс хранилища.
//
// Connect устанавливает соединение и блокируется до его готовности. Пока
// Connect не завершился успешно (или после Close), остальные методы
// возвращают errs.ErrNotConnected. Если бэкенд недоступен, Connect
// возвращает *errs.ErrStorageUnavailable.
type Storage interface {
	UserStorage
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
