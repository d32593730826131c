// Package errcode enumerates error codes used by gn.Error values
// across the application.
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

	// Consolidation errors
	ConsolidateInputError
	ConsolidateOutputError
	GazetteerReadError
	CorpusReadError

	// GeoJSON projection errors
	ProjectLabsError
	ProjectEvidenceError
	ProjectOutputError

	// Geocoding errors
	GeocodeInputError
	GeocodeRequestError
	GeocodeOutputError

	// Serve errors
	ServeDatasetError
	ServeStartError
)
