package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"

	"bookplanner/internal/microservices/http-api/models"
)

// ws_client.go = listens for pushed notifications over WebSocket.

type wsMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NotificationsURL turns an http(s) API base into the ws(s) listener URL.
func NotificationsURL(apiURL string) (string, error) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", u.Scheme)
	}
	u.Path += "/ws/notifications"
	return u.String(), nil
}

// ListenNotifications prints notifications to out until ctx is cancelled
// or the server closes the connection.
func ListenNotifications(ctx context.Context, apiURL string, out io.Writer) error {
	wsURL, err := NotificationsURL(apiURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n🔌 Connecting to %s...\n", wsURL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "✅ Connected! Waiting for reminders (Ctrl+C to stop)")

	// unblock ReadJSON on cancel
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		printMessage(out, msg)
	}
}

func printMessage(out io.Writer, msg wsMessage) {
	if msg.Type != "notification" {
		color.New(color.FgHiBlack).Fprintf(out, "· %s\n", msg.Type)
		return
	}

	var n models.Notification
	if err := json.Unmarshal(msg.Data, &n); err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ malformed notification: %v\n", err)
		return
	}

	stamp := n.CreatedAt.Local().Format("15:04")
	switch n.Tag {
	case models.TagDailyReminder:
		color.New(color.FgYellow, color.Bold).Fprintf(out, "🔔 [%s] %s\n", stamp, n.Title)
	case models.TagTest:
		color.New(color.FgCyan).Fprintf(out, "🧪 [%s] %s\n", stamp, n.Title)
	default:
		color.New(color.FgGreen).Fprintf(out, "📚 [%s] %s\n", stamp, n.Title)
	}
	if n.Body != "" {
		fmt.Fprintf(out, "   %s\n", n.Body)
	}
}
