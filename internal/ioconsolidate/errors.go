package ioconsolidate

import (
	"fmt"
	"runtime"

	"github.com/bsldata/bslmap/pkg/errcode"
	"github.com/gnames/gn"
)

// InputError creates an error for an unreadable candidate stream.
// This is the one condition that makes consolidation impossible.
func InputError(path string, err error) error {
	msg := `Cannot read extraction stream <em>%s</em>

<em>How to fix:</em>
  1. Check that the path points to the extraction output (JSONL)
  2. Run the extraction stage first if the file does not exist`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConsolidateInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read candidates: %w",
			fn, err),
	}
}

// OutputError creates an error for a consolidated table that cannot
// be written.
func OutputError(path string, err error) error {
	msg := "Cannot write consolidated table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConsolidateOutputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write output: %w",
			fn, err),
	}
}

// CorpusError creates an error for a corpus file that exists but
// cannot be read.
func CorpusError(path string, err error) error {
	msg := "Cannot read source corpus <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CorpusReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read corpus: %w",
			fn, err),
	}
}

// GroupError wraps a recovered per-group resolution failure.
func GroupError(pmid string, cause any) error {
	return fmt.Errorf("resolving publication %s: %v", pmid, cause)
}
