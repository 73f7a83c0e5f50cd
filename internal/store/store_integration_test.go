//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_AppendAndReadMessages(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	threadID := "it-" + uuid.New().String()[:8]

	userID, assistantID, err := s.AppendTurn(ctx, threadID,
		"best stager near Austin?", `{"type":"answer","message":"here are three"}`)
	if err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}
	if userID == uuid.Nil || assistantID == uuid.Nil {
		t.Fatal("expected non-nil message IDs")
	}

	messages, err := s.RecentMessages(ctx, threadID, 24)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != "user" || messages[1].Role != "assistant" {
		t.Errorf("expected user then assistant, got %s then %s", messages[0].Role, messages[1].Role)
	}
	if messages[0].ThreadID != threadID || messages[1].ThreadID != threadID {
		t.Error("messages must share the thread id")
	}
}

func TestIntegration_RecentMessagesWindow(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	threadID := "it-" + uuid.New().String()[:8]

	for i := 0; i < 15; i++ {
		if _, _, err := s.AppendTurn(ctx, threadID, "question", `{"type":"answer","message":"reply"}`); err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	// 12 turns of history is 24 rows.
	messages, err := s.RecentMessages(ctx, threadID, 24)
	if err != nil {
		t.Fatalf("RecentMessages failed: %v", err)
	}
	if len(messages) != 24 {
		t.Fatalf("expected window of 24 rows, got %d", len(messages))
	}
	if messages[0].Role != "user" {
		t.Error("the window must start on a whole turn")
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatal("messages must be ordered oldest first")
		}
	}
}

func TestIntegration_GetProfileMiss(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "no-such-user-"+uuid.New().String())
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestIntegration_SearchServicesFilters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	min, max := 100.0, 5000.0
	services, err := s.SearchServices(ctx, ServiceFilter{
		Query:     "photo",
		Category:  "marketing",
		BudgetMin: &min,
		BudgetMax: &max,
	}, 10)
	if err != nil {
		t.Fatalf("SearchServices failed: %v", err)
	}
	if len(services) > 10 {
		t.Errorf("expected at most 10 services, got %d", len(services))
	}
	for _, svc := range services {
		if svc.Price < min || svc.Price > max {
			t.Errorf("service %s price %.2f outside budget bounds", svc.ID, svc.Price)
		}
	}
}
