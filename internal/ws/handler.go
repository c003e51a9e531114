package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bingo-backend/internal/engine"
	"bingo-backend/internal/hub"
	"bingo-backend/internal/lobby"
	"bingo-backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection, joins the player to the requested
// room, and shuttles commands in and events out. Disconnect means leave.
func Handler(h *hub.Hub, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("room")
		if code == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "Player"
		}
		avatar := r.URL.Query().Get("avatar")

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Warn("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		playerID := uuid.NewString()
		out := make(chan lobby.Event, 8)
		errs := make(chan string, 4)

		joinReply := make(chan error, 1)
		lb.Inbox() <- lobby.Join{
			PlayerID: playerID,
			Name:     name,
			Avatar:   engine.Avatar{Variant: avatar},
			Outbox:   out,
			Reply:    joinReply,
		}
		if err := <-joinReply; err != nil {
			writeMessage(r.Context(), conn, types.ServerMessage{Type: "error", Message: err.Error()})
			return
		}
		defer func() { lb.Inbox() <- lobby.Leave{PlayerID: playerID} }()

		log.Info("player joined",
			zap.String("room", code),
			zap.String("player", playerID),
			zap.String("name", name),
		)

		// Writer goroutine: the only goroutine touching conn writes.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case ev, ok := <-out:
					if !ok {
						// Lobby dropped us or shut down.
						conn.Close(websocket.StatusGoingAway, "room closed")
						return
					}
					writeMessage(writeCtx, conn, eventMessage(ev))
				case msg := <-errs:
					writeMessage(writeCtx, conn, types.ServerMessage{Type: "error", Message: msg})
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (lobby.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				pushError(errs, "bad json")
				continue
			}

			if err := dispatch(lb, playerID, cm); err != nil {
				if errors.Is(err, errUnknownType) {
					pushError(errs, "unknown type")
					continue
				}
				pushError(errs, err.Error())
			}
		}
	}
}

var errUnknownType = errors.New("unknown type")

// dispatch forwards one client command to the room's actor and waits for
// its verdict.
func dispatch(lb *lobby.Lobby, playerID string, cm types.ClientMessage) error {
	reply := make(chan error, 1)
	switch cm.Type {
	case "set-board":
		lb.Inbox() <- lobby.SetBoard{PlayerID: playerID, Matrix: cm.Board, Reply: reply}
	case "call-number":
		lb.Inbox() <- lobby.CallNumber{PlayerID: playerID, Number: cm.Number, Reply: reply}
	default:
		return errUnknownType
	}
	return <-reply
}

func eventMessage(ev lobby.Event) types.ServerMessage {
	msg := types.ServerMessage{
		Type:   string(ev.Type),
		Game:   &ev.Game,
		Winner: ev.Winner,
	}
	if ev.Type == lobby.EvtNumberCalled {
		msg.Number = ev.Number
	}
	return msg
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}

func pushError(errs chan string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}
