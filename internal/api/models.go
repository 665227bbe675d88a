package api

import (
	"github.com/rustyeddy/marketsim/blotter"
	"github.com/rustyeddy/marketsim/market"
)

type SeriesRequest struct {
	Symbol      string  `param:"symbol" validate:"required,max=16"`
	Interval    string  `query:"interval" validate:"required,max=8"`
	Bars        int     `query:"bars" validate:"gte=0,lte=5000"`
	BasePrice   float64 `query:"base" validate:"gte=0"`
	DailyVolPct float64 `query:"vol" validate:"gte=0,lte=100"`
	Seed        string  `query:"seed" validate:"max=128"`
	MarketHours bool    `query:"market_hours"`
}

type SeriesResponse struct {
	RunID    string          `json:"run_id"`
	Symbol   string          `json:"symbol"`
	Interval market.Interval `json:"interval"`
	Seed     string          `json:"seed"`
	Candles  []market.Candle `json:"candles"`
}

type TickRequest struct {
	Last     *market.Candle `json:"last" validate:"required"`
	Interval string         `json:"interval" validate:"required,max=8"`
	VolPct   *float64       `json:"vol" default:"2" validate:"required,gte=0,lte=100"`
	Seed     string         `json:"seed" validate:"max=128"`
}

type FeedRequest struct {
	Symbol   string `param:"symbol" validate:"required,max=16"`
	Interval string `query:"interval" validate:"required,max=8"`
}

type FeedResponse struct {
	Symbol    string          `json:"symbol"`
	Interval  market.Interval `json:"interval"`
	Last      float64         `json:"last"`
	ChangePct float64         `json:"change_pct"`
	Candles   []market.Candle `json:"candles"`
}

type OrderRequest struct {
	Symbol   string `json:"symbol" validate:"required,max=16"`
	Side     string `json:"side" validate:"required,oneof=BUY SELL buy sell"`
	Qty      int64  `json:"qty" default:"100" validate:"gte=1,lte=1000000"`
	Interval string `json:"interval" validate:"required,max=8"`
}

type PositionResponse struct {
	blotter.Position
	Last  float64        `json:"last"`
	Fills []blotter.Fill `json:"fills"`
}

// StreamMessage is one websocket frame.
type StreamMessage struct {
	Type    string          `json:"type"` // "snapshot" or "candle"
	Symbol  string          `json:"symbol"`
	Candle  *market.Candle  `json:"candle,omitempty"`
	Candles []market.Candle `json:"candles,omitempty"`
}
