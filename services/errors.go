package services

import "errors"

// Phân loại lỗi của tầng service, controller dịch sang HTTP status.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)
