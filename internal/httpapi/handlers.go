package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bingo-backend/internal/engine"
	"bingo-backend/internal/hub"
)

type createRoomRequest struct {
	GridSize   int `json:"gridSize"`
	MaxPlayers int `json:"maxPlayers"`
}

type createRoomResponse struct {
	RoomID string `json:"roomId"`
}

// CreateRoom allocates a new room. The creator then joins it over the
// websocket like any other player.
func CreateRoom(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		reply := make(chan hub.CreateReply, 1)
		h.Inbox() <- hub.CreateRoom{GridSize: req.GridSize, MaxPlayers: req.MaxPlayers, Reply: reply}
		res := <-reply
		if res.Err != nil {
			if errors.Is(res.Err, engine.ErrInvalidConfig) {
				http.Error(w, res.Err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("create room failed", zap.Error(res.Err))
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createRoomResponse{RoomID: res.Code})
	}
}

// ListRooms returns rooms still open for joining.
func ListRooms(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []hub.RoomInfo, 1)
		h.Inbox() <- hub.ListJoinable{Reply: reply}
		rooms := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rooms)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
