package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const voiceWriteTimeout = 10 * time.Second

// Voice socket message types
const (
	VoiceTranscript = "transcript"
	VoiceSpeak      = "speak"
	VoiceError      = "error"
)

// VoiceMessage is one frame on the voice socket. Clients send transcript
// frames; the server sends speak and error frames.
type VoiceMessage struct {
	Type  string       `json:"type"`
	Text  string       `json:"text,omitempty"`
	Final bool         `json:"final,omitempty"`
	Voice domain.Voice `json:"voice,omitempty"`
}

// VoiceHandler streams recognized speech into a live conversation and
// speech requests back to the client
type VoiceHandler struct {
	therapyService *service.TherapyService
	upgrader       websocket.Upgrader
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(therapyService *service.TherapyService) *VoiceHandler {
	return &VoiceHandler{
		therapyService: therapyService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and listens until the client disconnects or the
// conversation ends
func (h *VoiceHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	controller, err := h.therapyService.Get(id)
	if err != nil {
		therapyError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("therapy_id", id).Msg("voice upgrade failed")
		return
	}
	defer conn.Close()

	sink := &socketSink{conn: conn}
	if err := controller.StartListening(); err != nil {
		sink.send(VoiceMessage{Type: VoiceError, Text: err.Error()})
		return
	}
	controller.SetSink(sink)

	defer func() {
		controller.SetSink(nil)
		if err := controller.StopListening(); err != nil {
			log.Debug().Err(err).Str("therapy_id", id).Msg("voice stop listening skipped")
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log.Info().Str("therapy_id", id).Msg("voice connected")
	if err := controller.Listen(ctx, newSocketSource(ctx, conn)); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("therapy_id", id).Msg("voice listen stopped")
	}
	log.Info().Str("therapy_id", id).Msg("voice disconnected")
}

// socketSink speaks by sending speak frames to the client
type socketSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socketSink) Speak(text string, voice domain.Voice) {
	s.send(VoiceMessage{Type: VoiceSpeak, Text: text, Voice: voice})
}

func (s *socketSink) send(msg VoiceMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(voiceWriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Str("type", msg.Type).Msg("voice write failed")
	}
}

// socketSource turns transcript frames into transcript chunks. The channel
// closes when the client disconnects.
type socketSource struct {
	chunks chan service.TranscriptChunk
}

func newSocketSource(ctx context.Context, conn *websocket.Conn) *socketSource {
	s := &socketSource{chunks: make(chan service.TranscriptChunk)}

	go func() {
		defer close(s.chunks)
		for {
			var msg VoiceMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug().Err(err).Msg("voice read ended")
				}
				return
			}
			if msg.Type != VoiceTranscript {
				continue
			}

			select {
			case s.chunks <- service.TranscriptChunk{Text: msg.Text, Final: msg.Final}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return s
}

func (s *socketSource) Chunks() <-chan service.TranscriptChunk {
	return s.chunks
}
