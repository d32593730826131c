package ioserve

import (
	"fmt"
	"runtime"

	"github.com/bsldata/bslmap/pkg/errcode"
	"github.com/gnames/gn"
)

// DatasetError creates an error for a dataset file that exists but
// cannot be read or parsed.
func DatasetError(path string, err error) error {
	msg := `Cannot load dataset <em>%s</em>

<em>How to fix:</em>
  Run <em>'bslmap geojson'</em> to rebuild the dataset.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServeDatasetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load dataset: %w", fn, err),
	}
}

// StartError creates an error for a server that failed to start or
// crashed.
func StartError(addr string, err error) error {
	msg := "Query service failed on <em>%s</em>"
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServeStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: server on %s: %w", fn, addr, err),
	}
}
