package model

import "time"

// PriceBar represents a single intraday bar from the market data API.
// VW is the volume-weighted average trade price for the bar interval.
type PriceBar struct {
	Time   time.Time
	VW     float64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleWindow is the ordered sequence of bars covering one dividend
// event's fetch window, restricted to regular trading hours. It belongs
// to a single event and is discarded after normalization.
type CandleWindow []PriceBar
