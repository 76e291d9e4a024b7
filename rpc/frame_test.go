// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func startTestServer(t testing.TB, register func(Server)) (Server, Client, context.Context) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := Listen(":0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	if register != nil {
		register(server)
	}

	go server.Serve(ctx)
	time.Sleep(10 * time.Millisecond)

	client, err := Dial(ctx, server.Addr())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return server, client, ctx
}

func TestFrameRoundTrip(t *testing.T) {
	_, client, ctx := startTestServer(t, func(s Server) {
		s.RegisterRaw("echo", func(ctx context.Context, payload []byte) ([]byte, error) {
			return payload, nil
		})
	})

	payload := []byte("hello world")
	resp, err := client.CallRaw(ctx, "echo", payload)
	if err != nil {
		t.Fatalf("CallRaw: %v", err)
	}

	if string(resp) != string(payload) {
		t.Errorf("got %q, want %q", resp, payload)
	}
}

func TestFrameCall(t *testing.T) {
	_, client, ctx := startTestServer(t, func(s Server) {
		s.RegisterRaw("add", func(ctx context.Context, payload []byte) ([]byte, error) {
			var req struct{ A, B int }
			if err := defaultCodec.Decode(payload, &req); err != nil {
				return nil, err
			}
			resp := struct{ Sum int }{Sum: req.A + req.B}
			return defaultCodec.Encode(resp)
		})
	})

	var resp struct{ Sum int }
	err := client.Call(ctx, "add", struct{ A, B int }{A: 2, B: 3}, &resp)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if resp.Sum != 5 {
		t.Errorf("got %d, want 5", resp.Sum)
	}
}

func TestFrameHandlerError(t *testing.T) {
	_, client, ctx := startTestServer(t, func(s Server) {
		s.RegisterRaw("boom", func(ctx context.Context, payload []byte) ([]byte, error) {
			return nil, errors.New("handler exploded")
		})
	})

	_, err := client.CallRaw(ctx, "boom", nil)
	if err == nil || err.Error() != "handler exploded" {
		t.Fatalf("got %v, want handler error surfaced verbatim", err)
	}

	_, err = client.CallRaw(ctx, "no-such-method", nil)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestFrameCallAfterClose(t *testing.T) {
	_, client, ctx := startTestServer(t, func(s Server) {
		s.RegisterRaw("echo", func(ctx context.Context, payload []byte) ([]byte, error) {
			return payload, nil
		})
	})

	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := client.CallRaw(ctx, "echo", nil); !errors.Is(err, ErrConnClosed) {
		t.Fatalf("got %v, want ErrConnClosed", err)
	}
}

func BenchmarkFrameRoundTrip(b *testing.B) {
	_, client, ctx := startTestServer(b, func(s Server) {
		s.RegisterRaw("echo", func(ctx context.Context, payload []byte) ([]byte, error) {
			return payload, nil
		})
	})

	payload := make([]byte, 1024)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := client.CallRaw(ctx, "echo", payload)
		if err != nil {
			b.Fatal(err)
		}
	}
}
