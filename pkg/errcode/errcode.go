package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Cache errors
	CacheMissingError
	CacheParseError
	CacheShapeError
	CacheColumnError
	CacheWriteError
	CacheOpenError

	// Sources errors
	SourcesConfigError
	SourcesUnknownDatasetError
	SourcesNotConfiguredError
	SourcesFetchError

	// Collect errors
	CollectHydroRecomputeError
	CollectCleanError
	CollectMatchError
	CollectExtendError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	SchemaGORMConnectionError
	SchemaCreateError
	ExportTruncateError
	ExportCopyError
)
