package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// DividendEvent is one historical dividend record for a ticker, as
// returned by the dividends API. Immutable once fetched; the record date
// only bounds the candle fetch window, the ex-dividend date anchors the
// normalized time axis.
type DividendEvent struct {
	Ticker         string
	ExDividendDate time.Time
	RecordDate     time.Time
	CashAmount     float64

	// Declared fields not every provider row carries.
	DeclarationDate null.String
	PayDate         null.String
	Frequency       null.Int
	DividendType    null.String
}
