package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tidydl/internal/config"
	"tidydl/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.SendNotifications = true
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyOrganizeCompleted(context.Background(), 3, 0, "manifest.json"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNewServiceReturnsNoopWhenDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call while notifications disabled: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.SendNotifications = false
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.NotifyUndoCompleted(context.Background(), 2, 0); err != nil {
		t.Fatalf("expected nil from disabled notifier, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "organize completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyOrganizeCompleted(context.Background(), 5, 0, "2026-08-01_10-00-00.json")
			},
			expectTitle:   "tidydl - Downloads Organized",
			expectMessage: "Moved 5 files into category folders\nUndo manifest: 2026-08-01_10-00-00.json",
			expectTags:    "tidydl,organize,completed",
		},
		{
			name: "organize completed with errors",
			notify: func(svc notifications.Service) error {
				return svc.NotifyOrganizeCompleted(context.Background(), 4, 2, "")
			},
			expectTitle:   "tidydl - Downloads Organized (with errors)",
			expectMessage: "Moved 4 files into category folders (2 could not be moved)",
			expectTags:    "tidydl,organize,completed",
		},
		{
			name: "undo completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyUndoCompleted(context.Background(), 3, 1)
			},
			expectTitle:   "tidydl - Organization Undone",
			expectMessage: "Restored 3 files to the downloads folder (1 could not be restored)",
			expectTags:    "tidydl,undo,completed",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("downloads path missing"), "organize")
			},
			expectTitle:    "tidydl - Error",
			expectMessage:  "Error during organize: downloads path missing",
			expectTags:     "tidydl,error,alert",
			expectPriority: "high",
		},
		{
			name: "test",
			notify: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "tidydl - Test",
			expectMessage:  "Notification system test",
			expectTags:     "tidydl,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.SendNotifications = true
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceSurfacesHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.SendNotifications = true
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
