package market

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const streamBase = "wss://stream.binance.com:9443/stream?streams="

// Tick is one miniTicker update for a symbol.
type Tick struct {
	Symbol string
	Price  float64
	Open   float64
	High   float64
	Low    float64
	Volume float64
	At     time.Time
}

type combinedMsg struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

type miniTickerMsg struct {
	Symbol string `json:"s"`
	Close  string `json:"c"`
	Open   string `json:"o"`
	High   string `json:"h"`
	Low    string `json:"l"`
	Volume string `json:"v"`
}

// Stream subscribes to the combined miniTicker feed for a set of symbols
// and fans ticks into a channel the UI drains. Widgets consume ticks; the
// panel manager never does.
type Stream struct {
	symbols []string
	out     chan Tick
	log     *logrus.Entry
}

func NewStream(symbols []string, log *logrus.Entry) *Stream {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Stream{symbols: symbols, out: make(chan Tick, 256), log: log}
}

// Ticks is the receive side of the feed.
func (s *Stream) Ticks() <-chan Tick { return s.out }

// Run drives the connect/read/reconnect loop until ctx is cancelled. Safe
// to run in its own goroutine; ticks are dropped when the UI falls behind
// rather than blocking the reader.
func (s *Stream) Run(ctx context.Context) {
	if len(s.symbols) == 0 {
		return
	}
	streams := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		streams[i] = strings.ToLower(sym) + "@miniTicker"
	}
	url := streamBase + strings.Join(streams, "/")

	for {
		if ctx.Err() != nil {
			return
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			s.log.WithError(err).Warn("ticker stream dial")
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}
		s.log.WithField("symbols", len(s.symbols)).Info("ticker stream connected")

		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()
		s.readLoop(conn)
		close(done)
		conn.Close()
	}
}

func (s *Stream) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.log.WithError(err).Warn("ticker stream read, reconnecting")
			return
		}
		tick, ok := parseCombinedTick(message)
		if !ok {
			continue
		}
		select {
		case s.out <- tick:
		default: // UI is behind; drop rather than stall the socket
		}
	}
}

// parseCombinedTick decodes one combined-stream frame into a Tick. Frames
// that are not miniTicker payloads are skipped.
func parseCombinedTick(message []byte) (Tick, bool) {
	var msg combinedMsg
	if err := json.Unmarshal(message, &msg); err != nil {
		return Tick{}, false
	}
	var mt miniTickerMsg
	if err := json.Unmarshal(msg.Data, &mt); err != nil || mt.Symbol == "" {
		return Tick{}, false
	}
	return Tick{
		Symbol: mt.Symbol,
		Price:  parseFloat(mt.Close),
		Open:   parseFloat(mt.Open),
		High:   parseFloat(mt.High),
		Low:    parseFloat(mt.Low),
		Volume: parseFloat(mt.Volume),
		At:     time.Now(),
	}, true
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
