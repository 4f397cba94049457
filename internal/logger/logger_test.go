package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		l, err := NewLogger(env)
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("NewLogger(%q) returned nil", env)
		}
	}
	if _, err := NewLogger("qa"); err == nil {
		t.Error("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stored := zap.New(core)
	fallbackCore, fallbackLogs := observer.New(zap.InfoLevel)
	fallback := zap.New(fallbackCore)

	FromContext(context.Background()).Info("dropped")
	FromContext(context.Background(), nil, fallback).Info("to fallback")

	ctx := ContextWithLogger(context.Background(), stored)
	FromContext(ctx, fallback).Info("to stored")

	if fallbackLogs.Len() != 1 || fallbackLogs.All()[0].Message != "to fallback" {
		t.Errorf("fallback logs = %v", fallbackLogs.All())
	}
	if logs.Len() != 1 || logs.All()[0].Message != "to stored" {
		t.Errorf("stored logs = %v", logs.All())
	}
}
