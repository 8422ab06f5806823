package timers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (fc *fakeClock) now() time.Time { return fc.t }

func (fc *fakeClock) advance(d time.Duration) { fc.t = fc.t.Add(d) }

func TestTimerCollection(t *testing.T) {
	var (
		fc = &fakeClock{t: time.Unix(0, 0)}
		tc = NewTimerCollection()
	)
	tc.now = fc.now
	{ // Nested and repeated stages
		tc.BeginStage("fluxes")
		tc.BeginStage("riemann")
		fc.advance(3 * time.Millisecond)
		tc.EndStage("riemann")
		tc.BeginStage("transverse")
		fc.advance(time.Millisecond)
		tc.EndStage("transverse")
		tc.BeginStage("riemann")
		fc.advance(5 * time.Millisecond)
		tc.EndStage("riemann")
		tc.EndStage("fluxes")

		tt := tc.Timers()
		assert.Equal(t, 3, len(tt))
		assert.Equal(t, "fluxes", tt[0].Name)
		assert.Equal(t, "riemann", tt[1].Name)
		assert.Equal(t, "transverse", tt[2].Name)
		assert.Equal(t, 9*time.Millisecond, tt[0].Total)
		assert.Equal(t, 2, tt[1].Calls)
		assert.Equal(t, 8*time.Millisecond, tt[1].Total)
		assert.Equal(t, 4*time.Millisecond, tt[1].Mean())
	}
	{ // Unmatched ends are ignored
		tc.EndStage("limiting")
		tc.EndStage("riemann")
		r, ok := tc.Get("riemann")
		assert.True(t, ok)
		assert.Equal(t, 2, r.Calls)
		_, ok = tc.Get("limiting")
		assert.False(t, ok)
		assert.Equal(t, time.Duration(0), Timer{}.Mean())
	}
	{ // Reports
		var buf bytes.Buffer
		logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
		tc.Report(logger)
		out := buf.String()
		assert.Equal(t, 3, strings.Count(out, "stage timing"))
		assert.True(t, strings.Index(out, "fluxes") < strings.Index(out, "transverse"))
		table := tc.Render()
		assert.Equal(t, 4, len(strings.Split(table, "\n")))
		assert.Contains(t, table, "riemann")
		assert.Contains(t, table, "4ms")
	}
	{ // Reset
		tc.Reset()
		assert.Empty(t, tc.Timers())
	}
}
