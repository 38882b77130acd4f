package tui

import (
	"errors"
	"fmt"

	"github.com/kmodtui/kmodtui/internal/kmod"
)

// errNoSelection is surfaced when edit is invoked with nothing selected.
var errNoSelection = errors.New("Select a parameter on the right using the arrow keys")

// notWritableError rejects an edit attempt on a read-only parameter.
type notWritableError struct {
	name string
}

func (e notWritableError) Error() string {
	return fmt.Sprintf("Parameter %s is not writable at runtime", e.name)
}

// editSession is one open edit dialog. At most one exists at a time: the
// dialog is modal, so no second edit can start while it is open.
type editSession struct {
	module string
	param  kmod.ParameterRecord
}

// beginEdit validates an edit attempt before any dialog opens. Only a
// concrete, writable selection yields a session; otherwise the returned
// error is shown as a warning and no edit session begins.
func beginEdit(module string, param *kmod.ParameterRecord) (*editSession, error) {
	if param == nil {
		return nil, errNoSelection
	}
	if !param.Writable {
		return nil, notWritableError{name: param.Name}
	}
	return &editSession{module: module, param: *param}, nil
}
