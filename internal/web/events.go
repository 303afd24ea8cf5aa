package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/session"
)

const writeTimeout = 10 * time.Second

// Events streams a StateView after every transition, starting with the
// current one. Slow clients skip intermediate snapshots but always
// receive the latest.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.LogError("web: websocket accept", err)
		return
	}
	defer conn.CloseNow()

	latest := make(chan session.State, 1)
	cancel := s.engine.Subscribe(func(st session.State) {
		offer(latest, st)
	})
	defer cancel()

	// Reads are discarded; the returned context ends when the client goes away.
	ctx := conn.CloseRead(r.Context())

	if err := writeState(ctx, conn, s.engine.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case st := <-latest:
			if err := writeState(ctx, conn, st); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Logger().Debug("websocket write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

// offer replaces any pending snapshot with st without blocking.
// Engine listeners run serially, so offer has a single producer.
func offer(ch chan session.State, st session.State) {
	select {
	case ch <- st:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}

func writeState(ctx context.Context, conn *websocket.Conn, st session.State) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, newStateView(st))
}
