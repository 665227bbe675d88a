package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rustyeddy/marketsim/blotter"
	"github.com/rustyeddy/marketsim/indicators"
	"github.com/rustyeddy/marketsim/journal"
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/pkg/id"
	"github.com/rustyeddy/marketsim/sim"
)

func invalidInterval(c echo.Context, err error) error {
	return badRequest(c, []ValidationError{{
		Code:    "ERR_ONEOF",
		Field:   "Interval",
		Message: err.Error(),
		Params:  map[string]interface{}{"options": market.Intervals()},
	}})
}

// getSeries handles GET /api/v1/series/:symbol.
func (s *Server) getSeries(c echo.Context) error {
	gen := s.cfg.Generator
	req := SeriesRequest{
		Interval:    gen.Interval,
		Bars:        gen.Bars,
		DailyVolPct: gen.DailyVolPct,
		Seed:        gen.Seed,
		MarketHours: gen.MarketHoursOnly,
	}
	if errs := bindRequest(c, &req); errs != nil {
		return badRequest(c, errs)
	}
	iv, err := market.ParseInterval(req.Interval)
	if err != nil {
		return invalidInterval(c, err)
	}

	symbol := strings.ToUpper(req.Symbol)
	bars := req.Bars
	if bars == 0 {
		bars = iv.DefaultBars()
	}
	base := req.BasePrice
	if base == 0 {
		base = market.BasePrice(symbol)
	}
	opts := sim.NewOptions(iv, bars, base)
	opts.DailyVolPct = req.DailyVolPct
	opts.Seed = req.Seed
	opts.MarketHoursOnly = req.MarketHours
	opts.Now = s.now()

	candles, err := sim.GenerateSeries(symbol, opts)
	if err != nil {
		s.metrics.GenerateErrors.Inc()
		return failure(c, err, sim.ErrInvalidOptions)
	}
	s.metrics.CandlesGenerated.WithLabelValues(string(iv)).Add(float64(len(candles)))

	resp := SeriesResponse{
		RunID:    id.New(),
		Symbol:   symbol,
		Interval: iv,
		Seed:     opts.SeedFor(symbol),
		Candles:  candles,
	}
	err = s.journal.RecordSeries(journal.SeriesRecord{
		RunID:       resp.RunID,
		Symbol:      symbol,
		Interval:    iv,
		Seed:        resp.Seed,
		GeneratedAt: opts.Now,
		Candles:     candles,
	})
	if err != nil {
		s.log.Error().Err(err).Str("run_id", resp.RunID).Msg("journal series")
		return failure(c, fmt.Errorf("record series: %w", err))
	}
	return success(c, resp)
}

// postTick handles POST /api/v1/tick.
func (s *Server) postTick(c echo.Context) error {
	var req TickRequest
	if errs := bindRequest(c, &req); errs != nil {
		return badRequest(c, errs)
	}
	iv, err := market.ParseInterval(req.Interval)
	if err != nil {
		return invalidInterval(c, err)
	}
	if !req.Last.Valid() || req.Last.Close <= 0 {
		return badRequest(c, []ValidationError{{
			Code:    "ERR_CANDLE",
			Field:   "Last",
			Message: "last must be a valid candle with a positive close",
		}})
	}

	next := sim.NextTickFromLast(*req.Last, iv, *req.VolPct, req.Seed)
	s.metrics.CandlesGenerated.WithLabelValues(string(iv)).Inc()
	return success(c, next)
}

// feed resolves the symbol and interval of req, creating the feed on first
// use. A nil feed means the error response has already been written.
func (s *Server) feed(c echo.Context, req *FeedRequest) (*sim.Feed, error) {
	req.Interval = s.cfg.Feeds.Interval
	if errs := bindRequest(c, req); errs != nil {
		return nil, badRequest(c, errs)
	}
	iv, err := market.ParseInterval(req.Interval)
	if err != nil {
		return nil, invalidInterval(c, err)
	}
	req.Symbol = strings.ToUpper(req.Symbol)
	f, err := s.reg.Get(req.Symbol, iv)
	if err != nil {
		return nil, failure(c, err)
	}
	return f, nil
}

// getFeed handles GET /api/v1/feeds/:symbol.
func (s *Server) getFeed(c echo.Context) error {
	var req FeedRequest
	f, err := s.feed(c, &req)
	if f == nil {
		return err
	}
	return success(c, FeedResponse{
		Symbol:    f.Symbol(),
		Interval:  f.Interval(),
		Last:      f.LastPrice(),
		ChangePct: f.ChangePct(),
		Candles:   f.Candles(),
	})
}

// getQuotes handles GET /api/v1/quotes.
func (s *Server) getQuotes(c echo.Context) error {
	return success(c, market.Watchlist(s.reg.LastPrices()))
}

// getSummary handles GET /api/v1/summary/:symbol.
func (s *Server) getSummary(c echo.Context) error {
	var req FeedRequest
	f, err := s.feed(c, &req)
	if f == nil {
		return err
	}
	return success(c, indicators.Summarize(f.Candles()))
}

// postOrder handles POST /api/v1/orders. Orders fill at the feed's last price.
func (s *Server) postOrder(c echo.Context) error {
	req := OrderRequest{Interval: s.cfg.Feeds.Interval}
	if errs := bindRequest(c, &req); errs != nil {
		return badRequest(c, errs)
	}
	iv, err := market.ParseInterval(req.Interval)
	if err != nil {
		return invalidInterval(c, err)
	}
	side, err := blotter.ParseSide(req.Side)
	if err != nil {
		return failure(c, err, blotter.ErrInvalidOrder)
	}

	symbol := strings.ToUpper(req.Symbol)
	f, err := s.reg.Get(symbol, iv)
	if err != nil {
		return failure(c, err)
	}
	fill, err := s.blotter.Submit(side, symbol, req.Qty, f.LastPrice())
	if err != nil {
		if !errors.Is(err, blotter.ErrInvalidOrder) {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("submit order")
		}
		return failure(c, err, blotter.ErrInvalidOrder)
	}
	s.metrics.Fills.WithLabelValues(string(fill.Side)).Inc()
	s.log.Info().
		Str("id", fill.ID).
		Str("symbol", fill.Symbol).
		Str("side", string(fill.Side)).
		Int64("qty", fill.Qty).
		Float64("price", fill.Price).
		Msg("order filled")
	return created(c, fill)
}

// getPosition handles GET /api/v1/positions/:symbol.
func (s *Server) getPosition(c echo.Context) error {
	var req FeedRequest
	f, err := s.feed(c, &req)
	if f == nil {
		return err
	}
	last := f.LastPrice()
	return success(c, PositionResponse{
		Position: s.blotter.Position(f.Symbol(), last),
		Last:     last,
		Fills:    s.blotter.Fills(f.Symbol()),
	})
}
