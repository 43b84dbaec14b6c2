/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
resolving an optional identity token, upgrading the HTTP connection to WebSocket, and
initiating the client lifecycle.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"pulsehub/internal/app/hub"
	"pulsehub/internal/pkg/auth/jwt"
	"pulsehub/internal/pkg/errs"
	"pulsehub/internal/pkg/limiter"
	"pulsehub/internal/pkg/logx"
	"pulsehub/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
//
// Identity is optional at connect time. A valid `token` query parameter binds the
// connection to a user immediately; otherwise the connection stays anonymous until
// the client announces itself over the socket.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		userID := ""
		if token := r.URL.Query().Get("token"); token != "" {
			payload, err := jwt.ParseToken(token, deps.Config.JWTSecret)
			if err != nil {
				logx.Warn("WebSocket token rejected, continuing as anonymous", "ip", ip)
			} else {
				userID = payload.ID
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := hub.NewClient(deps.Hub, conn, userID)

		go client.WritePump()

		logx.Info("WebSocket connection established and client registered", "user_id", userID)

		deps.Hub.Register(client)
		if userID != "" {
			deps.Hub.JoinUserRoom(client, userID)
		}

		client.ReadPump()
	}
}
