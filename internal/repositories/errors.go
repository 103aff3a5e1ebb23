// Package repositories 实现数据访问层：每个 Repository 负责一张表，通过 pgxpool 执行原生 SQL。
package repositories

import "errors"

var (
	// ErrEducatorNotFound is returned when no educator row matches the id.
	ErrEducatorNotFound = errors.New("educator not found")
	// ErrVideoNotFound is returned when no video row matches the id.
	ErrVideoNotFound = errors.New("video not found")
	// ErrHistoryNotFound is returned when a sync history row cannot be finalized.
	ErrHistoryNotFound = errors.New("sync history not found")
)
