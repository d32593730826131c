package iogeojson

import (
	"fmt"
	"runtime"

	"github.com/bsldata/bslmap/pkg/errcode"
	"github.com/gnames/gn"
)

// LabsError creates an error for an unreadable labs table.
func LabsError(path string, err error) error {
	msg := `Cannot read labs table <em>%s</em>

<em>How to fix:</em>
  Run <em>'bslmap gazetteer'</em> to build the labs table first.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProjectLabsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read labs: %w", fn, err),
	}
}

// EvidenceError creates an error for an unreadable consolidated
// table.
func EvidenceError(path string, err error) error {
	msg := `Cannot read evidence table <em>%s</em>

<em>How to fix:</em>
  Run <em>'bslmap consolidate'</em> to build the evidence table first.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProjectEvidenceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read evidence: %w", fn, err),
	}
}

// OutputError creates an error for a GeoJSON dataset that cannot be
// written.
func OutputError(path string, err error) error {
	msg := "Cannot write GeoJSON dataset <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ProjectOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write dataset: %w", fn, err),
	}
}
