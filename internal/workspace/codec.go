package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"coindeck/internal/market"
)

// SchemaVersion is stamped into every serialized layout so future geometry
// model changes can migrate old records instead of guessing.
const SchemaVersion = 1

// InstrumentResolver validates persisted symbols against the known
// instrument set.
type InstrumentResolver interface {
	Resolve(symbol string) (market.Instrument, bool)
}

type layoutRecord struct {
	SchemaVersion int           `json:"schemaVersion"`
	Panels        []panelRecord `json:"panels"`
}

type panelRecord struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Exchange  string  `json:"exchange"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	LinkGroup *string `json:"linkGroup,omitempty"`
}

// Serialize encodes the panel list for storage. Z-order and the snap toggle
// are session state and are deliberately absent.
func Serialize(panels []*Panel) (string, error) {
	rec := layoutRecord{SchemaVersion: SchemaVersion, Panels: make([]panelRecord, 0, len(panels))}
	for _, p := range panels {
		rec.Panels = append(rec.Panels, panelRecord{
			ID:        p.ID,
			Kind:      string(p.Kind),
			Symbol:    p.Instrument.Symbol,
			Timeframe: string(p.Timeframe),
			Exchange:  string(p.Exchange),
			X:         p.Geometry.X,
			Y:         p.Geometry.Y,
			Width:     p.Geometry.Width,
			Height:    p.Geometry.Height,
			LinkGroup: p.LinkGroup,
		})
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("serialize layout: %w", err)
	}
	return string(b), nil
}

// Deserialize parses a stored layout and validates each entry against the
// resolver. Entries whose instrument does not resolve, or whose widget kind
// is unknown, are dropped silently; partial recovery beats total failure.
// A malformed blob or unknown schema version is an error, which callers
// treat the same as an empty layout.
func Deserialize(blob string, resolver InstrumentResolver) ([]*Panel, error) {
	var rec layoutRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if rec.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("layout schema version %d not supported", rec.SchemaVersion)
	}

	panels := make([]*Panel, 0, len(rec.Panels))
	seen := make(map[string]bool, len(rec.Panels))
	for _, r := range rec.Panels {
		in, ok := resolver.Resolve(r.Symbol)
		if !ok {
			continue
		}
		kind := PanelKind(r.Kind)
		if !kind.Valid() {
			continue
		}
		id := r.ID
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		ex := market.Exchange(r.Exchange)
		if !ex.Valid() {
			ex = market.DefaultExchange
		}
		tf := Timeframe(r.Timeframe)
		if tf == "" {
			tf = Timeframe1h
		}
		size := ClampSize(Size{Width: r.Width, Height: r.Height})
		panels = append(panels, &Panel{
			ID:         id,
			Kind:       kind,
			Instrument: in,
			Timeframe:  tf,
			Geometry:   Geometry{X: r.X, Y: r.Y, Width: size.Width, Height: size.Height},
			Exchange:   ex,
			LinkGroup:  r.LinkGroup,
		})
	}
	return panels, nil
}

// DefaultLayout is the starter workspace used when nothing valid was
// persisted: one chart and one order book side by side on the default
// instrument.
func DefaultLayout(in market.Instrument) []*Panel {
	return []*Panel{
		{
			ID:         uuid.NewString(),
			Kind:       KindChart,
			Instrument: in,
			Timeframe:  Timeframe1h,
			Geometry:   Geometry{X: 40, Y: 40, Width: 720, Height: 420},
			Exchange:   market.DefaultExchange,
		},
		{
			ID:         uuid.NewString(),
			Kind:       KindOrderBook,
			Instrument: in,
			Timeframe:  Timeframe1h,
			Geometry:   Geometry{X: 800, Y: 40, Width: 360, Height: 420},
			Exchange:   market.DefaultExchange,
		},
	}
}
