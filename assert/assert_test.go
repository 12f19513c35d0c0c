package assert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bloeys/fourgl/logging"
)

func TestT(t *testing.T) {

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(nil)

	T(true, "never shown %d", 1)
	if buf.Len() != 0 {
		t.Errorf("passing assert logged %q", buf.String())
	}

	defer func() {

		r := recover()
		if r == nil {
			t.Fatal("failing assert did not panic")
		}

		if msg, _ := r.(string); !strings.Contains(msg, "size was 3") {
			t.Errorf("panic message = %v, want it to contain 'size was 3'", r)
		}

		if !strings.Contains(buf.String(), "size was 3") {
			t.Errorf("log = %q, want the assert message", buf.String())
		}
	}()

	T(false, "size was %d", 3)
}
