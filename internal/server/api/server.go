package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/auth"
	apierror "github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/error"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// Server implements a small TCP API for driving the keyboard engine.
type Server struct {
	kb      *keyboard.Keyboard
	addr    string
	ln      net.Listener
	logger  *slog.Logger
	router  *Router
	config  ServerConfig
	events  *Broadcaster
	authKey []byte
}

// New creates a new API server bound to a keyboard engine.
func New(kb *keyboard.Keyboard, addr string, config ServerConfig, logger *slog.Logger) *Server {
	a := &Server{
		kb:     kb,
		addr:   addr,
		logger: logger,
		config: config,
	}
	a.router = NewRouter()
	a.events = NewBroadcaster()
	return a
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Keyboard returns the underlying keyboard engine.
func (a *Server) Keyboard() *keyboard.Keyboard { return a.kb }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Events returns the broadcaster relaying engine events to watch streams.
func (a *Server) Events() *Broadcaster { return a.events }

// Start listens on the configured address and serves incoming API commands.
// With a password configured every connection must complete the auth
// handshake before its request is read.
func (a *Server) Start() error {
	if a.config.Password != "" {
		key, err := auth.DeriveKey(a.config.Password)
		if err != nil {
			return fmt.Errorf("derive API key: %w", err)
		}
		a.authKey = key
	}
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	go a.events.Run(a.kb.Events())
	a.logger.Info("API listening", "addr", a.addr, "auth", a.authKey != nil)
	go a.serve()
	return nil
}

// Close stops the API server and terminates active watch streams.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
	a.events.Close()
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Info("API accept error", "error", err)
			return
		}
		go a.handleConn(c)
	}
}

func (a *Server) writeError(w io.Writer, err error) {
	apiErr := apierror.WrapError(err)
	problemJSON, _ := json.Marshal(apiErr)
	fmt.Fprintf(w, "%s\n", string(problemJSON))
}

func (a *Server) writeOK(w io.Writer, rest string) {
	if rest == "" {
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s\n", rest)
	}
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())

	if a.config.ConnectionTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(a.config.ConnectionTimeout))
	}

	r := bufio.NewReader(conn)
	var w io.Writer = conn

	if a.authKey != nil {
		isAuth, err := auth.IsAuthHandshake(r)
		if err != nil {
			connLogger.Error("read handshake", "error", err)
			return
		}
		if !isAuth {
			connLogger.Error("api rejected unauthenticated request")
			a.writeError(w, apierror.ErrUnauthorized("authentication required"))
			return
		}
		clientNonce, serverNonce, err := auth.HandleAuthHandshake(r, conn, a.authKey, false)
		if err != nil {
			connLogger.Error("api auth handshake failed", "error", err)
			a.writeError(w, err)
			return
		}
		sessionKey := auth.DeriveSessionKey(a.authKey, serverNonce, clientNonce)
		sc, err := auth.WrapConn(conn, sessionKey)
		if err != nil {
			connLogger.Error("api secure channel setup failed", "error", err)
			return
		}
		conn = sc
		r = bufio.NewReader(conn)
		w = conn
	}

	// Read until null terminator
	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("api incomplete request (no null terminator)")
		} else {
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	// Remove null terminator
	reqData = strings.TrimSuffix(reqData, "\x00")

	if reqData == "" {
		connLogger.Error("api empty command")
		a.writeError(w, apierror.ErrBadRequest("empty request"))
		return
	}

	// Split on first whitespace character using regex \s
	wsRegex := regexp.MustCompile(`\s`)
	loc := wsRegex.FindStringIndex(reqData)

	var path, payload string
	if loc != nil {
		path = reqData[:loc[0]]
		payload = reqData[loc[1]:]
	} else {
		path = reqData
		payload = ""
	}

	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(w, apierror.ErrBadRequest("empty path"))
		return
	}

	path = strings.ToLower(path)
	connLogger.Info("api cmd", "path", path)

	if h, params := a.router.Match(path); h != nil {
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("api handler error", "path", path, "error", err)
			a.writeError(w, err)
			return
		}
		connLogger.Debug("api handler success", "path", path)
		a.writeOK(w, res.JSON)
		return
	} else if sh, _ := a.router.MatchStream(path); sh != nil {
		connLogger.Info("api stream begin", "path", path)
		// Watch streams are long-lived; lift the initial read deadline.
		_ = conn.SetReadDeadline(time.Time{})
		if err := sh(conn, connLogger); err != nil {
			connLogger.Error("api stream handler error", "path", path, "error", err)
		}
		connLogger.Info("api stream end", "path", path)
		return
	}
	connLogger.Error("api unknown path", "path", path)
	a.writeError(w, apierror.ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}
