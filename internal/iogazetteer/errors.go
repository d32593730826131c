package iogazetteer

import (
	"fmt"
	"runtime"

	"github.com/bsldata/bslmap/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadError creates an error for a gazetteer file that exists but
// cannot be read or parsed.
func ReadError(path string, err error) error {
	msg := "Cannot read gazetteer table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GazetteerReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read gazetteer: %w",
			fn, err),
	}
}
