package gameserver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/portalgate/internal/config"
	"github.com/udisondev/portalgate/internal/gameserver/clientpackets"
	"github.com/udisondev/portalgate/internal/model"
)

const saveOnDisconnectTimeout = 3 * time.Second

// CharacterStore loads a character when its session enters the world and
// saves it when the session ends.
type CharacterStore interface {
	LoadPlayer(ctx context.Context, charID int64) (*model.Player, error)
	Save(ctx context.Context, p *model.Player) error
}

// Server accepts client connections. The first packet of a connection must
// be RequestEnterWorld; every later packet goes to Handler.HandlePacket.
type Server struct {
	cfg        config.GameServerConfig
	handler    *Handler
	characters CharacterStore

	online sync.Map // characterID → struct{}

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a game server.
func NewServer(cfg config.GameServerConfig, handler *Handler, characters CharacterStore) *Server {
	return &Server{
		cfg:        cfg,
		handler:    handler,
		characters: characters,
	}
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on cfg.Addr() and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done, then waits for every
// session to leave the world.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	slog.Info("game server started", "address", ln.Addr())

	var wg sync.WaitGroup
	err := s.acceptLoop(ctx, &wg, ln)
	wg.Wait()

	slog.Info("game server stopped", "address", ln.Addr())
	return err
}

func (s *Server) acceptLoop(ctx context.Context, wg *sync.WaitGroup, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("failed to accept new connection", "error", err)
			continue
		}

		// Enable TCP keepalive (detect dead connections)
		if tc, ok := conn.(*net.TCPConn); ok {
			if err := tc.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tc.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	slog.Info("new game client connection", "remote", remote)

	buf := make([]byte, maxFrameSize)
	sess, err := s.enterWorld(ctx, conn, buf)
	if err != nil {
		slog.Warn("enter world failed", "remote", remote, "error", err)
		return
	}
	player := sess.Player()
	defer s.leaveWorld(player)

	for {
		payload, err := s.read(conn, buf)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				slog.Info("client disconnected", "character", player.Name(), "remote", remote)
			} else {
				slog.Warn("reading packet", "character", player.Name(), "error", err)
			}
			return
		}
		if err := s.handler.HandlePacket(ctx, sess, payload); err != nil {
			slog.Error("packet handling error", "character", player.Name(), "error", err)
			return
		}
	}
}

// enterWorld reads RequestEnterWorld, loads the character and registers its session.
func (s *Server) enterWorld(ctx context.Context, conn net.Conn, buf []byte) (*Session, error) {
	payload, err := s.read(conn, buf)
	if err != nil {
		return nil, fmt.Errorf("reading first packet: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("packet too short: %d bytes", len(payload))
	}
	if op := binary.LittleEndian.Uint16(payload); op != clientpackets.OpcodeRequestEnterWorld {
		return nil, fmt.Errorf("expected RequestEnterWorld, got opcode %s", opcodeLabel(op))
	}
	pkt, err := clientpackets.ParseRequestEnterWorld(payload[2:])
	if err != nil {
		return nil, fmt.Errorf("parsing RequestEnterWorld: %w", err)
	}

	if _, dup := s.online.LoadOrStore(pkt.CharacterID, struct{}{}); dup {
		return nil, fmt.Errorf("character %d already online", pkt.CharacterID)
	}

	player, err := s.characters.LoadPlayer(ctx, pkt.CharacterID)
	if err != nil {
		s.online.Delete(pkt.CharacterID)
		return nil, err
	}
	sess, err := s.handler.EnterWorld(ctx, player, &tcpConn{conn: conn, writeTimeout: s.cfg.WriteTimeout})
	if err != nil {
		s.online.Delete(pkt.CharacterID)
		return nil, err
	}

	slog.Info("character entered world",
		"character", player.Name(),
		"characterID", player.CharacterID(),
		"objectID", player.ObjectID())
	return sess, nil
}

// leaveWorld despawns the character and saves it. The character may enter
// again only after the save.
func (s *Server) leaveWorld(player *model.Player) {
	s.handler.LeaveWorld(player)

	saveCtx, cancel := context.WithTimeout(context.Background(), saveOnDisconnectTimeout)
	defer cancel()
	if err := s.characters.Save(saveCtx, player); err != nil {
		slog.Error("save character on disconnect",
			"character", player.Name(),
			"error", err)
	}
	s.online.Delete(player.CharacterID())
}

func (s *Server) read(conn net.Conn, buf []byte) ([]byte, error) {
	if s.cfg.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return nil, fmt.Errorf("setting read deadline: %w", err)
		}
	}
	return readFrame(conn, buf)
}
