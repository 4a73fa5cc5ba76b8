package market

// Instrument is one tradeable symbol as shown to the user. The record is
// closed on purpose: a panel that cannot resolve its symbol to one of these
// is dropped rather than rendered with partial data.
type Instrument struct {
	Symbol      string
	DisplayName string
	IconRef     string
	BaseAsset   string
	QuoteAsset  string
}

// Exchange identifies the data source a panel reads from.
type Exchange string

const (
	ExchangeBinance Exchange = "binance"
	ExchangeBybit   Exchange = "bybit"
	ExchangeKucoin  Exchange = "kucoin"
	ExchangeOKX     Exchange = "okx"
)

// DefaultExchange is used for new panels unless the config overrides it.
const DefaultExchange = ExchangeBinance

// Exchanges lists the selectable sources in cycle order.
var Exchanges = []Exchange{ExchangeBinance, ExchangeBybit, ExchangeKucoin, ExchangeOKX}

// Valid reports whether e is a known exchange.
func (e Exchange) Valid() bool {
	for _, x := range Exchanges {
		if e == x {
			return true
		}
	}
	return false
}

// Next returns the exchange after e in cycle order.
func (e Exchange) Next() Exchange {
	for i, x := range Exchanges {
		if e == x {
			return Exchanges[(i+1)%len(Exchanges)]
		}
	}
	return DefaultExchange
}
