package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/protocol"
	"pixelcooked.dev/internal/sim/kitchen"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 60 * time.Second
	writeTimeout     = 5 * time.Second
	frameBuffer      = 8
)

// Server exposes a read-only feed of a kitchen's frames.
type Server struct {
	kitchen *kitchen.Kitchen
	log     *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(k *kitchen.Kitchen, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		kitchen: k,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // loopback only anyway
		},
		done: make(chan struct{}),
	}
}

// Handler routes /observer/bootstrap and /observer/ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/observer/bootstrap", s.BootstrapHandler())
	mux.HandleFunc("/observer/ws", s.WSHandler())
	return mux
}

// Close tells connected and future observers that the round has finished. Call it after the
// kitchen's Run returns.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Server) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(s.kitchen.Bootstrap())
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub, ok := s.handshake(conn)
		if !ok {
			return
		}
		if s.closed() {
			s.reject(conn, protocol.ErrRoundOver, "round is over")
			return
		}

		sid := fmt.Sprintf("O%d", s.nextID.Add(1))
		frames := make(chan []byte, frameBuffer)
		select {
		case s.kitchen.ObserverJoin() <- kitchen.ObserverJoinRequest{SessionID: sid, FrameOut: frames, EveryNTicks: sub.EveryNTicks}:
		default:
			s.reject(conn, protocol.ErrRoundBusy, "server busy")
			return
		}
		defer s.kitchen.RequestObserverLeave(sid)
		s.log.Printf("observer %s subscribed every=%d", sid, max(sub.EveryNTicks, 1))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errs := make(chan []byte, 4)
		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			reason := "bye"
			defer func() {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason), time.Now().Add(time.Second))
				// Unblocks the reader.
				_ = conn.Close()
			}()
			for {
				var b []byte
				select {
				case <-ctx.Done():
					return
				case <-s.done:
					reason = "round over"
					return
				case fb, ok := <-frames:
					if !ok {
						reason = "round over"
						return
					}
					b = fb
				case b = <-errs:
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Observers are read-only; anything but a repeated SUBSCRIBE is answered with an ERROR.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err == nil && base.Type == protocol.TypeSubscribe {
				continue
			}
			b, _ := json.Marshal(observerproto.NewError(protocol.ErrProtoBadRequest, "observers may only SUBSCRIBE"))
			select {
			case errs <- b:
			default:
			}
		}

		cancel()
		<-writerDone
		s.log.Printf("observer %s left", sid)
	}
}

// handshake reads the first message, which must be a SUBSCRIBE of the current version.
func (s *Server) handshake(conn *websocket.Conn) (observerproto.SubscribeMsg, bool) {
	var sub observerproto.SubscribeMsg
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return sub, false
	}
	if err := json.Unmarshal(msg, &sub); err != nil {
		s.reject(conn, protocol.ErrProtoBadRequest, "bad json")
		return sub, false
	}
	if sub.Type != protocol.TypeSubscribe {
		s.reject(conn, protocol.ErrProtoBadRequest, "expected SUBSCRIBE")
		return sub, false
	}
	if sub.ProtocolVersion != observerproto.Version {
		s.reject(conn, protocol.ErrProtoVersion, "unsupported protocol_version")
		return sub, false
	}
	if sub.EveryNTicks < 0 {
		sub.EveryNTicks = 0
	}
	return sub, true
}

// reject sends an ERROR frame and a policy close.
func (s *Server) reject(conn *websocket.Conn, code, msg string) {
	b, _ := json.Marshal(observerproto.NewError(code, msg))
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.TextMessage, b)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg), time.Now().Add(time.Second))
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
