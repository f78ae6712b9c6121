package actions

import (
	"errors"
	"time"

	"github.com/s0up4200/wtw/api"
)

// ClearError clears the error slot once the clear delay has passed. It
// returns immediately. Earlier pending clears are not cancelled, so an
// error set after this call can still be cleared by it.
func (a *Actions) ClearError() {
	time.AfterFunc(a.clearErrorDelay, func() {
		a.store.SetError(nil)
	})
}

// ReportError writes a readable message for err into the error slot and
// schedules its removal
func (a *Actions) ReportError(err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && !reqErr.IsNetwork() {
		msg = reqErr.Message
	}

	a.store.SetError(&msg)
	a.ClearError()
}
