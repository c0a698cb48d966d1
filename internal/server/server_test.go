package server

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/tnguyen21/navshell/internal/app"
	"github.com/tnguyen21/navshell/internal/config"
)

// fakeContext keeps the values a session handler stores.
type fakeContext struct {
	ssh.Context
	values map[any]any
}

func (c *fakeContext) Value(key any) any       { return c.values[key] }
func (c *fakeContext) SetValue(key, value any) { c.values[key] = value }

type fakeSession struct {
	ssh.Session
	ctx *fakeContext
}

func (s fakeSession) Context() ssh.Context { return s.ctx }
func (s fakeSession) User() string         { return "tester" }
func (s fakeSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2222}
}

func newFakeSession() fakeSession {
	return fakeSession{ctx: &fakeContext{values: make(map[any]any)}}
}

func TestNewCreatesHostKey(t *testing.T) {
	cfg := config.Default()
	cfg.HostKeyDir = t.TempDir()

	srv, err := New(&cfg, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.HostKeyDir, HostKeyName)); err != nil {
		t.Errorf("host key not written: %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() before Start error: %v", err)
	}
}

func TestSessionModelClosedAfterProgram(t *testing.T) {
	cfg := config.Default()
	cfg.HostKeyDir = t.TempDir()
	srv, err := New(&cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	sess := newFakeSession()
	m, _ := srv.teaHandler(sess)
	model, ok := m.(*app.Model)
	if !ok {
		t.Fatalf("teaHandler returned %T, want *app.Model", m)
	}
	if got := srv.Sessions(); got != 1 {
		t.Fatalf("Sessions() = %d, want 1", got)
	}

	nextCalled := false
	srv.endSession(func(ssh.Session) { nextCalled = true })(sess)

	if !model.Closed() {
		t.Error("session model not closed")
	}
	if got := srv.Sessions(); got != 0 {
		t.Errorf("Sessions() = %d after end, want 0", got)
	}
	if !nextCalled {
		t.Error("next handler not called")
	}

	// A session that never reached the program has nothing to close.
	srv.endSession(func(ssh.Session) {})(newFakeSession())
	if got := srv.Sessions(); got != 0 {
		t.Errorf("Sessions() = %d, want 0", got)
	}
}
