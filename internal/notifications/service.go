package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tidydl/internal/config"
)

const userAgent = "tidydl/0.1.0"

// Service is the notification surface used by the command layer. Every method
// is safe to call when notifications are disabled.
type Service interface {
	NotifyOrganizeCompleted(ctx context.Context, moved, failed int, manifest string) error
	NotifyUndoCompleted(ctx context.Context, restored, failed int) error
	NotifyError(ctx context.Context, err error, operation string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// With notifications disabled or no topic set, a noop implementation is
// returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if !cfg.SendNotifications || topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyOrganizeCompleted(ctx context.Context, moved, failed int, manifest string) error {
	message := fmt.Sprintf("Moved %d files into category folders", moved)
	if failed > 0 {
		message = fmt.Sprintf("%s (%d could not be moved)", message, failed)
	}
	if manifest = strings.TrimSpace(manifest); manifest != "" {
		message = fmt.Sprintf("%s\nUndo manifest: %s", message, manifest)
	}
	data := payload{
		title:   "tidydl - Downloads Organized",
		message: message,
		tags:    []string{"tidydl", "organize", "completed"},
	}
	if failed > 0 {
		data.title = "tidydl - Downloads Organized (with errors)"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyUndoCompleted(ctx context.Context, restored, failed int) error {
	message := fmt.Sprintf("Restored %d files to the downloads folder", restored)
	if failed > 0 {
		message = fmt.Sprintf("%s (%d could not be restored)", message, failed)
	}
	data := payload{
		title:   "tidydl - Organization Undone",
		message: message,
		tags:    []string{"tidydl", "undo", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, operation string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if operation = strings.TrimSpace(operation); operation != "" {
		builder.WriteString(" during ")
		builder.WriteString(operation)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "tidydl - Error",
		message:  builder.String(),
		tags:     []string{"tidydl", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "tidydl - Test",
		message:  "Notification system test",
		tags:     []string{"tidydl", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyOrganizeCompleted(context.Context, int, int, string) error { return nil }
func (noopService) NotifyUndoCompleted(context.Context, int, int) error             { return nil }
func (noopService) NotifyError(context.Context, error, string) error                { return nil }
func (noopService) TestNotification(context.Context) error                          { return nil }
