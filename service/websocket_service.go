package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/types"
)

// WebSocketService answers note-context chat over a websocket connection.
type WebSocketService struct {
	gen      *GenerationService
	notes    *NoteService
	upgrader websocket.Upgrader
	logger   *logrus.Entry
}

func NewWebSocketService(gen *GenerationService, notes *NoteService) *WebSocketService {
	return &WebSocketService{
		gen:   gen,
		notes: notes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		logger: logrus.WithField("service", "websocket"),
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.WithError(err).Warn("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			s.handleChatPayload(ctx, conn, req.Payload)
		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) handleChatPayload(ctx context.Context, conn *websocket.Conn, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.writeError(conn, "invalid chat payload")
		return
	}
	var chat types.WebSocketChatPayload
	if err := json.Unmarshal(raw, &chat); err != nil {
		s.writeError(conn, "invalid chat payload")
		return
	}

	noteContext := ""
	if chat.NoteID != "" {
		corpus, _, err := s.notes.BuildCorpus(ctx, chat.NoteID)
		if err != nil {
			s.writeError(conn, "note not found")
			return
		}
		noteContext = corpus
	}

	s.write(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: types.WebSocketProcessingResponse{Message: "thinking"},
	})

	answer, err := s.gen.Chat(ctx, noteContext, chat.Messages, types.ModelConfig{})
	if err != nil {
		var qe *types.QuotaError
		if errors.As(err, &qe) {
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketError, Payload: qe})
			return
		}
		s.logger.WithError(err).Error("chat failed")
		s.writeError(conn, "failed to generate a reply")
		return
	}

	s.write(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketChat,
		Payload: types.WebSocketChatResponse{Message: answer},
	})
}

func (s *WebSocketService) write(conn *websocket.Conn, resp types.WebSocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.WithError(err).Warn("websocket write failed")
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	s.write(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketProcessingResponse{Message: message},
	})
}
