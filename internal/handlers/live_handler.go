package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/csdept/deptsite-api/internal/form"
	"github.com/csdept/deptsite-api/internal/live"
	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/internal/services"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	liveWriteWait      = 10 * time.Second
	livePongWait       = 60 * time.Second
	livePingPeriod     = (livePongWait * 9) / 10
	liveMaxMessageSize = 16 * 1024
)

// LiveConfig configures live sessions
type LiveConfig struct {
	AllowedOrigins []string
	ResetDelay     time.Duration
	Debounce       time.Duration
}

type LiveHandler struct {
	directory services.DirectoryServiceInterface
	submitter form.Submitter
	validate  *validator.Validate
	config    LiveConfig
	upgrader  websocket.Upgrader
}

func NewLiveHandler(directory services.DirectoryServiceInterface, submitter form.Submitter, validate *validator.Validate, cfg LiveConfig) *LiveHandler {
	h := &LiveHandler{
		directory: directory,
		submitter: submitter,
		validate:  validate,
		config:    cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients) and browser requests from the allowed origins
func (h *LiveHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range h.config.AllowedOrigins {
		if allowed == "*" || allowed == origin || allowed == u.Scheme+"://"+u.Host {
			return true
		}
	}
	return false
}

// wsSender writes JSON messages to the connection one at a time
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(msg models.LiveMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

// Serve handles GET /live: upgrades to a WebSocket and runs one page session
// until the page goes away
func (h *LiveHandler) Serve(c *gin.Context) {
	ctx := c.Request.Context()

	roster, err := h.directory.Roster(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		attachError(c, err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	session := live.NewSession(sessionID, roster, &wsSender{conn: conn}, live.Options{
		ResetDelay: h.config.ResetDelay,
		Debounce:   h.config.Debounce,
		Submitter:  h.submitter,
		Validator:  h.validate,
	})
	defer session.Close()

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	log := logger.With(zap.String("session_id", sessionID))
	log.Info("Live session opened", zap.String("client_ip", c.ClientIP()))

	if err := session.Start(); err != nil {
		log.Debug("Live session start failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(liveMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	// Detach from the upgrade request; it ends with the handler anyway
	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	go keepAlive(sessionCtx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn("Live session read failed", zap.Error(err))
			}
			break
		}
		if err := session.Handle(sessionCtx, data); err != nil {
			log.Debug("Live session write failed", zap.Error(err))
			break
		}
	}

	log.Info("Live session closed")
}

// keepAlive pings the page so dead connections hit the read deadline
func keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		}
	}
}
