package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/persistence/profiles"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/world"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 60 * time.Second
	writeTimeout     = 5 * time.Second
	outQueueSize     = 32
)

type Server struct {
	world *world.World
	store *profiles.Store // may be nil; sessions fall back to ephemeral identity
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, store *profiles.Store, logger *log.Logger) *Server {
	return &Server{
		world: w,
		store: store,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		playerID, username, out := s.handshake(conn)
		if playerID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop. One message at a time preserves per-player ordering.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, raw, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			msg, ok, err := protocol.Decode(raw)
			if err != nil {
				s.log.Printf("ws: malformed frame from %s: %v", playerID, err)
				continue
			}
			if !ok {
				base, _ := protocol.DecodeBase(raw)
				s.log.Printf("ws: unknown frame type %q from %s", base.Type, playerID)
				continue
			}
			if join, isJoin := msg.(*protocol.PlayerJoinMsg); isJoin {
				// Duplicate handshake after registration; drop it.
				_ = join
				continue
			}
			if chat, isChat := msg.(*protocol.ChatMessageMsg); isChat {
				s.persistChat(username, chat)
			}
			s.world.Inbox() <- world.EventEnvelope{PlayerID: playerID, Event: msg}
		}

		// Cleanup: the final profile write happens in the world's leave path.
		s.world.Leave() <- playerID
	}
}

// handshake enforces the join-first protocol rule: the first frame must be
// PLAYER_JOIN or the connection is closed as a policy violation.
func (s *Server) handshake(conn *websocket.Conn) (playerID, username string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return "", "", nil
	}

	base, err := protocol.DecodeBase(raw)
	if err != nil || base.Type != protocol.TypePlayerJoin {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected PLAYER_JOIN"),
			time.Now().Add(time.Second))
		return "", "", nil
	}

	msg, ok, err := protocol.Decode(raw)
	if err != nil || !ok {
		return "", "", nil
	}
	join := msg.(*protocol.PlayerJoinMsg)
	if join.ProtocolVersion != "" && join.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"),
			time.Now().Add(time.Second))
		return "", "", nil
	}

	out = make(chan []byte, outQueueSize)
	username = strings.TrimSpace(join.Username)

	respCh := make(chan world.JoinResponse, 1)
	s.world.Join() <- world.JoinRequest{
		Name:     strings.TrimSpace(join.Name),
		Username: username,
		Color:    join.Color,
		Profile:  s.resolveProfile(username),
		Out:      out,
		Resp:     respCh,
	}
	resp := <-respCh
	if resp.Rejected {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, resp.Reason),
			time.Now().Add(time.Second))
		return "", "", nil
	}

	if err := writeJSON(conn, resp.Ack); err != nil {
		s.world.Leave() <- resp.Ack.PlayerID
		return "", "", nil
	}
	return resp.Ack.PlayerID, username, out
}

// resolveProfile loads or creates the durable profile. Any failure is logged
// and the session continues with ephemeral state.
func (s *Server) resolveProfile(username string) *world.JoinProfile {
	if s.store == nil || username == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := s.store.GetUserByUsername(ctx, username); err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			s.log.Printf("ws: user lookup for %q failed, ephemeral session: %v", username, err)
			return nil
		}
		if _, err := s.store.CreateUser(ctx, username, ""); err != nil {
			s.log.Printf("ws: create user %q failed, ephemeral session: %v", username, err)
			return nil
		}
	}

	p, err := s.store.GetPlayerProfile(ctx, username)
	if errors.Is(err, profiles.ErrNotFound) {
		if err := s.store.CreatePlayerProfile(ctx, profiles.Profile{Username: username}); err != nil {
			s.log.Printf("ws: create profile %q failed, ephemeral session: %v", username, err)
		}
		return nil
	}
	if err != nil {
		s.log.Printf("ws: profile lookup for %q failed, ephemeral session: %v", username, err)
		return nil
	}
	return &world.JoinProfile{
		Money:    p.Money,
		Kills:    p.Kills,
		Deaths:   p.Deaths,
		WeaponID: p.WeaponID,
	}
}

func (s *Server) persistChat(username string, chat *protocol.ChatMessageMsg) {
	if s.store == nil || username == "" || chat.Text == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.store.SaveChatMessage(ctx, username, chat.Channel, chat.Text); err != nil {
		s.log.Printf("ws: save chat for %q: %v", username, err)
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
