// Package server implements the live-reload development server behind
// `vitae serve`. It renders the CV graph to a browser page and pushes a
// reload event over a websocket whenever the CV file changes on disk.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/vitae/pkg/debug"
	"github.com/vanderheijden86/vitae/pkg/export"
	"github.com/vanderheijden86/vitae/pkg/loader"
	"github.com/vanderheijden86/vitae/pkg/viz"
	"github.com/vanderheijden86/vitae/pkg/watcher"
)

// DefaultAddr is where the server listens when no address is configured.
const DefaultAddr = "localhost:7333"

// ErrNoCVPath is returned when the server is constructed without a CV file.
var ErrNoCVPath = errors.New("server requires a cv file path")

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// WithViewport sets the rendered viewport in pixels.
func WithViewport(width, height int) Option {
	return func(s *Server) { s.width, s.height = width, height }
}

// Server watches a CV file and serves the rendered graph with live reload.
type Server struct {
	addr   string
	cvPath string
	title  string
	width  int
	height int

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a server for the given CV file.
func New(cvPath string, opts ...Option) (*Server, error) {
	if cvPath == "" {
		return nil, ErrNoCVPath
	}
	s := &Server{
		addr:   DefaultAddr,
		cvPath: cvPath,
		title:  "Curriculum Vitae",
		width:  1600,
		height: 1000,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the HTTP handler: the rendered page at /, the graph
// document at /graph.json, and the reload websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/graph.json", s.handleGraphJSON)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until the context is canceled or the listener fails. The
// CV file is watched for the whole run; every settled change broadcasts
// a reload to all connected pages.
func (s *Server) Run(ctx context.Context) error {
	w, err := watcher.NewWatcher(s.cvPath,
		watcher.WithOnChange(s.broadcastReload),
		watcher.WithOnError(func(err error) {
			debug.Log("server: watch error: %v", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		debug.Log("server: listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// render loads the CV fresh and settles a layout for it, so every page
// load reflects the file as it is now.
func (s *Server) render() (*viz.Visualizer, error) {
	defer debug.LogEnterExit("server.render")()

	entry, err := loader.LoadFile(s.cvPath)
	if err != nil {
		return nil, err
	}
	nodes, links, err := loader.Flatten(entry)
	if err != nil {
		return nil, err
	}

	v := viz.New(float64(s.width), float64(s.height))
	for _, n := range nodes {
		if err := v.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, l := range links {
		if err := v.AddLink(l); err != nil {
			return nil, err
		}
	}
	v.Settle(export.DefaultSettleTicks)
	return v, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	v, err := s.render()
	if err != nil {
		http.Error(w, fmt.Sprintf("rendering cv: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writePage(w, s.title, v); err != nil {
		debug.Log("server: writing page: %v", err)
	}
}

func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	v, err := s.render()
	if err != nil {
		http.Error(w, fmt.Sprintf("rendering cv: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	doc := export.BuildDocument(s.title, s.width, s.height, v)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		debug.Log("server: writing graph json: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Log("server: websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}
	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()
	debug.Log("server: client connected (%d total)", s.clientCount())

	go c.writer()
	go s.reader(c)
}

func (s *Server) reader(c *client) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writer() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	c.conn.Close()
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// broadcastReload tells every connected page to refresh. Slow clients
// are skipped rather than blocking the watcher callback.
func (s *Server) broadcastReload() {
	msg, _ := json.Marshal(map[string]string{"type": "reload"})

	s.mu.Lock()
	defer s.mu.Unlock()
	debug.Log("server: cv changed, reloading %d clients", len(s.clients))
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}
