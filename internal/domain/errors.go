package domain

import "errors"

var (
	// ErrOrderNotFound: заказа с таким id нет.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStoreNotInitialized: обращение к хранилищу до Initialize (или после Close).
	ErrStoreNotInitialized = errors.New("database not initialized")
	// ErrStoreInit: хранилище не удалось создать или прочитать при старте.
	ErrStoreInit = errors.New("database initialization failed")
)
