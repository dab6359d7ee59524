package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/reklai/harpoon-telescope/internal/app/mainloop"
	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/telemetry"
	"github.com/reklai/harpoon-telescope/internal/logging"
)

const (
	// Path is where the extension connects.
	Path = "/bridge"

	defaultQueueSize    = 256
	defaultPingInterval = 20 * time.Second
	shutdownTimeout     = 3 * time.Second
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address used by Run.
	Addr string
	// CallTimeout bounds calls whose context has no deadline.
	CallTimeout  func() time.Duration
	QueueSize    int
	PingInterval time.Duration
	Metrics      *telemetry.Metrics
	// OnConnect runs on the inbound loop each time an extension attaches,
	// so it may call back into the extension.
	OnConnect func(ctx context.Context)
}

// Server is the daemon side of the extension bridge. It implements
// port.TabHost and port.TabMessenger by forwarding calls over the socket.
// Inbound frames are handled one at a time on a mainloop.Loop.
type Server struct {
	opts     Options
	baseCtx  context.Context
	loop     *mainloop.Loop
	upgrader websocket.Upgrader
	metrics  *telemetry.Metrics

	mu   sync.Mutex
	peer *peer
	addr net.Addr
}

var (
	_ port.TabHost      = (*Server)(nil)
	_ port.TabMessenger = (*Server)(nil)
)

// NewServer creates a bridge. ctx supplies the logger for inbound work.
func NewServer(ctx context.Context, opts Options) *Server {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	return &Server{
		opts:    opts,
		baseCtx: logging.WithComponent(ctx, "bridge"),
		loop:    mainloop.NewLoop(opts.QueueSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		metrics: opts.Metrics,
	}
}

// checkOrigin admits extension pages and non-browser clients. Ordinary web
// pages must not be able to drive the daemon through localhost.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "chrome-extension", "moz-extension", "safari-web-extension":
		return true
	default:
		return false
	}
}

// Connected reports whether an extension is attached.
func (s *Server) Connected() bool {
	return s.current() != nil
}

// Addr returns the bound address once Run is listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler serves the bridge endpoint, /metrics and /healthz.
func (s *Server) Handler(inbound Inbound) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveWS(inbound))
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"extension": s.Connected(),
		})
	})
	return mux
}

// Run listens on Options.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, inbound Inbound) error {
	log := logging.FromContext(s.baseCtx)

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.Handler(inbound),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("bridge listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve bridge: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Hijacked sockets are not closed by Shutdown.
		s.dropPeer()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) serveWS(inbound Inbound) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(s.baseCtx)

		ws, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Str("origin", r.Header.Get("Origin")).Msg("bridge upgrade rejected")
			return
		}

		p := newPeer(uuid.NewString(), ws)
		s.attach(p)
		defer s.detach(p)

		if s.opts.OnConnect != nil {
			if err := s.loop.Post(s.baseCtx, s.connected); err != nil {
				log.Debug().Err(err).Msg("connect hook skipped")
			}
		}

		go s.keepAlive(p)
		s.readLoop(p, inbound)
	}
}

func (s *Server) current() *peer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peer
}

// attach makes p the active connection. An older connection is closed.
func (s *Server) attach(p *peer) {
	s.mu.Lock()
	old := s.peer
	s.peer = p
	s.mu.Unlock()

	if old != nil {
		logging.FromContext(s.baseCtx).Info().Str("old", old.id).Str("new", p.id).Msg("extension reconnected, replacing connection")
		old.close()
	} else {
		logging.FromContext(s.baseCtx).Info().Str("conn", p.id).Msg("extension connected")
	}
	s.metrics.SetBridgeConnected(true)
}

func (s *Server) detach(p *peer) {
	p.close()

	s.mu.Lock()
	active := s.peer == p
	if active {
		s.peer = nil
	}
	s.mu.Unlock()

	if active {
		logging.FromContext(s.baseCtx).Info().Str("conn", p.id).Msg("extension disconnected")
		s.metrics.SetBridgeConnected(false)
	}
}

func (s *Server) dropPeer() {
	if p := s.current(); p != nil {
		s.detach(p)
	}
}

func (s *Server) keepAlive(p *peer) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.closed:
			return
		case <-ticker.C:
			if err := p.ping(); err != nil {
				p.close()
				return
			}
		}
	}
}

// readLoop delivers replies to waiting calls directly and queues requests
// and events on the loop, so a handler blocked on a call never stalls the
// reader that will deliver its reply.
func (s *Server) readLoop(p *peer, inbound Inbound) {
	log := logging.FromContext(s.baseCtx).With().Str("conn", p.id).Logger()

	pongWait := 2 * s.opts.PingInterval
	_ = p.ws.SetReadDeadline(time.Now().Add(pongWait))
	p.ws.SetPongHandler(func(string) error {
		return p.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("bridge read failed")
			}
			return
		}
		_ = p.ws.SetReadDeadline(time.Now().Add(pongWait))

		if !gjson.ValidBytes(data) {
			log.Warn().Int("bytes", len(data)).Msg("dropping malformed frame")
			continue
		}

		switch kind := gjson.GetBytes(data, "kind").String(); kind {
		case KindResponse:
			var f Frame
			if err := json.Unmarshal(data, &f); err != nil {
				log.Warn().Err(err).Msg("dropping undecodable response")
				continue
			}
			if !p.resolve(f) {
				log.Debug().Str("id", f.ID).Msg("late reply dropped")
			}
		case KindRequest, KindEvent:
			raw := data
			err := s.loop.Post(s.baseCtx, func() {
				s.handleInbound(p, inbound, kind, raw)
			})
			if err != nil {
				log.Debug().Err(err).Msg("loop stopped, closing connection")
				return
			}
		default:
			log.Warn().Str("kind", kind).Msg("dropping frame of unknown kind")
		}
	}
}

func (s *Server) handleInbound(p *peer, inbound Inbound, kind string, raw []byte) {
	if inbound == nil {
		return
	}
	reply := s.dispatch(inbound, raw)
	if reply == nil || kind != KindRequest {
		return
	}

	out := Frame{
		ID:    gjson.GetBytes(raw, "id").String(),
		Kind:  KindResponse,
		Type:  gjson.GetBytes(raw, "type").String(),
		OK:    reply.OK,
		Error: reply.Error,
	}
	if reply.Data != nil {
		payload, err := json.Marshal(reply.Data)
		if err != nil {
			logging.FromContext(s.baseCtx).Error().Err(err).Str("type", out.Type).Msg("failed to encode reply")
			out.OK, out.Error, payload = false, "internal error", nil
		}
		out.Payload = payload
	}
	if err := p.write(out); err != nil {
		logging.FromContext(s.baseCtx).Debug().Err(err).Str("id", out.ID).Msg("reply not sent")
	}
}

func (s *Server) connected() {
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(logging.FromContext(s.baseCtx), r)
		}
	}()
	s.opts.OnConnect(s.baseCtx)
}

// dispatch runs inbound, turning a panic into an error reply so one bad
// message cannot take the daemon down.
func (s *Server) dispatch(inbound Inbound, raw []byte) (reply *Reply) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(logging.FromContext(s.baseCtx), r)
			reply = &Reply{Error: "internal error"}
		}
	}()
	return inbound(s.baseCtx, raw)
}

// call sends a request to the extension and waits for the matching reply.
func (s *Server) call(ctx context.Context, callType string, payload, out any) (err error) {
	defer func() { s.metrics.RecordBridgeCall(callType, err) }()

	p := s.current()
	if p == nil {
		return port.ErrDisconnected
	}

	var body json.RawMessage
	if payload != nil {
		if body, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("encode %s: %w", callType, err)
		}
	}

	if _, ok := ctx.Deadline(); !ok && s.opts.CallTimeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout())
		defer cancel()
	}

	id := uuid.NewString()
	replies := p.expect(id)
	defer p.forget(id)

	if err := p.write(Frame{ID: id, Kind: KindRequest, Type: callType, Payload: body}); err != nil {
		return fmt.Errorf("%w: %v", port.ErrDisconnected, err)
	}

	select {
	case f := <-replies:
		if !f.OK {
			return responseError(callType, f.Error)
		}
		if out != nil && len(f.Payload) > 0 {
			if err := json.Unmarshal(f.Payload, out); err != nil {
				return fmt.Errorf("decode %s reply: %w", callType, err)
			}
		}
		return nil
	case <-p.closed:
		return port.ErrDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}
