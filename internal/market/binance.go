package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/adshao/go-binance/v2"
)

// FetchBinanceInstruments pulls the exchange info and maps every trading
// symbol quoted in quoteAsset onto the closed Instrument record. Best
// effort at startup: the caller keeps the seeded catalog when this fails.
func FetchBinanceInstruments(ctx context.Context, quoteAsset string) ([]Instrument, error) {
	info, err := binance.NewClient("", "").NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("exchange info: %w", err)
	}

	var out []Instrument
	for _, s := range info.Symbols {
		if s.Status != "TRADING" || s.QuoteAsset != quoteAsset {
			continue
		}
		out = append(out, Instrument{
			Symbol:      s.Symbol,
			DisplayName: s.BaseAsset + " / " + s.QuoteAsset,
			IconRef:     strings.ToLower(s.BaseAsset),
			BaseAsset:   s.BaseAsset,
			QuoteAsset:  s.QuoteAsset,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no trading symbols quoted in %s", quoteAsset)
	}
	return out, nil
}
