package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
)

const SyncTagWords = "sync-words"

var rootPath = &url.URL{Path: "/"}

type Notification struct {
	Title   string
	Body    string
	Icon    string
	Badge   string
	Vibrate []int
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sync is the background sync hook. Nothing is replayed yet.
func (g *Gateway) Sync(ctx context.Context, tag string) error {
	if tag == SyncTagWords {
		g.logger.Info("background sync triggered", slog.String("tag", tag))
	}
	return nil
}

// Push builds the notification for a push payload. An empty payload gets the default title and body.
func (g *Gateway) Push(data []byte) (Notification, error) {
	var payload pushPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return Notification{}, fmt.Errorf("json.Unmarshal > %w", err)
		}
	}
	if payload.Title == "" {
		payload.Title = "Dictionary Lens"
	}
	if payload.Body == "" {
		payload.Body = "New notification"
	}
	return Notification{
		Title:   payload.Title,
		Body:    payload.Body,
		Icon:    "/static/icon-192.png",
		Badge:   "/static/favicon.ico",
		Vibrate: []int{200, 100, 200},
	}, nil
}

// NotificationClick returns the URL to open for a clicked notification.
func (g *Gateway) NotificationClick() string {
	return g.origin.ResolveReference(rootPath).String()
}
