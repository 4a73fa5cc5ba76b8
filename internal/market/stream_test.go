package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCombinedTick(t *testing.T) {
	frame := []byte(`{"stream":"btcusdt@miniTicker","data":{"e":"24hrMiniTicker","s":"BTCUSDT","c":"64250.10","o":"63000.00","h":"64800.00","l":"62500.00","v":"1532.42","q":"97000000.0"}}`)
	tick, ok := parseCombinedTick(frame)
	require.True(t, ok)
	require.Equal(t, "BTCUSDT", tick.Symbol)
	require.InDelta(t, 64250.10, tick.Price, 1e-9)
	require.InDelta(t, 63000.0, tick.Open, 1e-9)
	require.InDelta(t, 64800.0, tick.High, 1e-9)
	require.InDelta(t, 62500.0, tick.Low, 1e-9)
	require.InDelta(t, 1532.42, tick.Volume, 1e-9)
	require.False(t, tick.At.IsZero())
}

func TestParseCombinedTickRejectsJunk(t *testing.T) {
	for _, frame := range []string{
		`not json`,
		`{"stream":"x","data":{}}`,
		`{"stream":"btcusdt@depth","data":{"bids":[],"asks":[]}}`,
	} {
		_, ok := parseCombinedTick([]byte(frame))
		require.False(t, ok, "frame %q should not parse", frame)
	}
}
