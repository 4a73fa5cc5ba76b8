package repository

import (
	"context"
	"database/sql"
	"strings"

	"coindeck/internal/market"
)

// SeedDefaults ensures a baseline instrument set exists so the dashboard
// works offline before the first exchange-info refresh. Idempotent and safe
// to run on every startup; the whole seed lands in one transaction.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := NewInstrumentRepo(db)
	existing, err := repo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []struct {
		base string
		name string
	}{
		{"BTC", "Bitcoin"},
		{"ETH", "Ethereum"},
		{"SOL", "Solana"},
		{"BNB", "BNB"},
		{"XRP", "XRP"},
		{"ADA", "Cardano"},
		{"DOGE", "Dogecoin"},
		{"AVAX", "Avalanche"},
		{"DOT", "Polkadot"},
		{"LINK", "Chainlink"},
		{"MATIC", "Polygon"},
		{"LTC", "Litecoin"},
		{"ATOM", "Cosmos"},
		{"NEAR", "NEAR Protocol"},
		{"ARB", "Arbitrum"},
		{"OP", "Optimism"},
	}
	ins := make([]market.Instrument, 0, len(defaults))
	for _, d := range defaults {
		ins = append(ins, market.Instrument{
			Symbol:      d.base + "USDT",
			DisplayName: d.name,
			IconRef:     strings.ToLower(d.base),
			BaseAsset:   d.base,
			QuoteAsset:  "USDT",
		})
	}
	return repo.UpsertAll(ctx, ins)
}
