package ipc

import (
	"context"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestServerWaitsForHandlersOnShutdown(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "bot.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var finished atomic.Int32
	srv := &Server{
		Listener: ln,
		Handle: func(conn net.Conn) {
			c := NewConnection(conn, nil)
			c.RegisterHandler(TypeHello, func(Envelope) (*Envelope, error) {
				ack, err := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
				return &ack, err
			})
			_ = c.ReadLoop()
			// Stands in for the session flushing its journal.
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan struct{})
	go func() {
		srv.Serve(ctx)
		close(served)
	}()

	// Two sessions, each confirmed live with a hello round trip.
	for i := 0; i < 2; i++ {
		host, err := net.Dial("unix", sock)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer host.Close()
		_ = host.SetDeadline(time.Now().Add(5 * time.Second))
		hello, _ := NewEnvelope(TypeHello, HelloMessage{})
		if err := WriteEnvelope(host, hello); err != nil {
			t.Fatal(err)
		}
		if resp, err := ReadEnvelope(host); err != nil || resp.Type != TypeAck {
			t.Fatalf("hello reply = %+v, %v", resp, err)
		}
	}

	cancel()
	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if n := finished.Load(); n != 2 {
		t.Errorf("Serve returned with %d of 2 handlers finished", n)
	}

	if _, err := net.Dial("unix", sock); err == nil {
		t.Error("listener still accepting after shutdown")
	}
}

func TestServerStopsWhenListenerCloses(t *testing.T) {
	ln, err := net.Listen("unix", filepath.Join(t.TempDir(), "bot.sock"))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &Server{Listener: ln, Handle: func(conn net.Conn) { _ = conn.Close() }}

	served := make(chan struct{})
	go func() {
		srv.Serve(context.Background())
		close(served)
	}()
	_ = ln.Close()

	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after listener close")
	}
}
