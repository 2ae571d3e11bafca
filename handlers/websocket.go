package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rushali2005/studentpp/services"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHistory streams the caller's history events. Browsers cannot set
// headers on a websocket handshake, so the token comes from the query string.
// Delivery is best effort.
func LiveHistory(cache *services.CacheService, authService *services.AuthService, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("ws")
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			respondError(c, &services.AuthenticationError{Reason: "missing token query parameter"})
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			respondError(c, err)
			return
		}

		if !cache.Available() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live history is unavailable"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pubsub, err := cache.Subscribe(ctx, services.HistoryChannel(claims.UserID))
		if err != nil {
			logger.Warn("history subscribe failed", zap.String("owner_id", claims.UserID), zap.Error(err))
			return
		}
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := writeEvent(conn, msg.Payload); err != nil {
					if !errors.Is(err, websocket.ErrCloseSent) {
						logger.Debug("ws write failed", zap.String("owner_id", claims.UserID), zap.Error(err))
					}
					return
				}
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, payload string) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, []byte(payload))
}
