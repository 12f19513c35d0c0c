package assert

import (
	"fmt"

	"github.com/bloeys/fourgl/logging"
)

// T panics with the formatted message if check is false.
// Used for programmer errors, not for conditions callers are expected to recover from.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	logging.ErrLog.Output(2, "Assert failed: "+msg)
	panic("Assert failed: " + msg)
}
