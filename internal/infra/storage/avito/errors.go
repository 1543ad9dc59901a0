package avito

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт Авито не подключен
	ErrAccountNotFound = errors.New("avito.repository: account not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("avito.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("avito.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("avito.repository: failed to scan row")
)
