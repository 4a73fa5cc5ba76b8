package repository

import (
	"context"
	"database/sql"

	"coindeck/internal/database"
	"coindeck/internal/market"
)

const upsertInstrumentSQL = `
	INSERT INTO instruments(symbol, display_name, icon_ref, base_asset, quote_asset, active, updated_at)
	VALUES(?, ?, ?, ?, ?, 1, ?)
	ON CONFLICT(symbol) DO UPDATE SET
	 display_name=excluded.display_name,
	 icon_ref=excluded.icon_ref,
	 base_asset=excluded.base_asset,
	 quote_asset=excluded.quote_asset,
	 active=1,
	 updated_at=excluded.updated_at;`

// InstrumentRepo handles the known-instrument set that panel validation
// resolves against.
type InstrumentRepo struct {
	db *sql.DB
}

func NewInstrumentRepo(db *sql.DB) *InstrumentRepo { return &InstrumentRepo{db: db} }

func (r *InstrumentRepo) Upsert(ctx context.Context, in market.Instrument) error {
	_, err := r.db.ExecContext(ctx, upsertInstrumentSQL,
		in.Symbol, in.DisplayName, in.IconRef, in.BaseAsset, in.QuoteAsset, database.Now())
	return err
}

// UpsertAll writes the whole instrument set in one transaction so a failed
// refresh never leaves a half-replaced catalog behind.
func (r *InstrumentRepo) UpsertAll(ctx context.Context, instruments []market.Instrument) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		now := database.Now()
		for _, in := range instruments {
			if _, err := tx.ExecContext(ctx, upsertInstrumentSQL,
				in.Symbol, in.DisplayName, in.IconRef, in.BaseAsset, in.QuoteAsset, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the active instruments in symbol order.
func (r *InstrumentRepo) List(ctx context.Context) ([]market.Instrument, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT symbol, display_name, icon_ref, base_asset, quote_asset
	FROM instruments WHERE active = 1 ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Instrument
	for rows.Next() {
		var in market.Instrument
		if err := rows.Scan(&in.Symbol, &in.DisplayName, &in.IconRef, &in.BaseAsset, &in.QuoteAsset); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// Deactivate hides a delisted symbol without breaking old layouts' history.
func (r *InstrumentRepo) Deactivate(ctx context.Context, symbol string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE instruments SET active = 0, updated_at = ? WHERE symbol = ?`,
		database.Now(), symbol)
	return err
}
