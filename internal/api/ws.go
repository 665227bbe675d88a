package api

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// streamFeed handles GET /ws/feeds/:symbol. The first frame is a snapshot of
// the window, then one frame per tick. Subscribing happens before the
// snapshot, so a candle may appear in both; clients dedupe on time.
func (s *Server) streamFeed(c echo.Context) error {
	var req FeedRequest
	f, err := s.feed(c, &req)
	if f == nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied
		s.log.Debug().Err(err).Msg("websocket upgrade")
		return nil
	}
	defer conn.Close()

	ch, cancel := s.reg.Subscribe(f.Symbol(), f.Interval())
	defer cancel()
	s.metrics.Subscribers.Inc()
	defer s.metrics.Subscribers.Dec()

	log := s.log.With().Str("symbol", f.Symbol()).Str("interval", string(f.Interval())).Logger()
	log.Debug().Msg("stream opened")
	defer log.Debug().Msg("stream closed")

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(StreamMessage{
		Type:    "snapshot",
		Symbol:  f.Symbol(),
		Candles: f.Candles(),
	}); err != nil {
		return nil
	}

	// The read loop only services control frames and notices the close.
	done := make(chan struct{})
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return nil
		case candle, ok := <-ch:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(StreamMessage{
				Type:   "candle",
				Symbol: f.Symbol(),
				Candle: &candle,
			}); err != nil {
				log.Debug().Err(err).Msg("stream write")
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}
