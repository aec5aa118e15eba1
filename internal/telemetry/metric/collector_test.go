package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSessionCollector(t *testing.T) {
	live := false
	c := NewSessionCollector(func() bool { return live })

	expected := `
# HELP leasedesk_session_authenticated 1 when a session is signed in, 0 otherwise.
# TYPE leasedesk_session_authenticated gauge
leasedesk_session_authenticated 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}

	live = true
	if got := testutil.ToFloat64(c); got != 1 {
		t.Errorf("gauge = %v, want 1", got)
	}
}
