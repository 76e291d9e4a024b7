// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/namenode/logger"
)

// ErrConnClosed is returned for calls issued on a closed connection.
var ErrConnClosed = errors.New("frame: connection closed")

// maxFrameLen bounds a single message (64MB).
const maxFrameLen = 64 * 1024 * 1024

// frame message types
type messageType uint8

const (
	msgRequest  messageType = 0x01
	msgResponse messageType = 0x02
	msgError    messageType = 0x03
)

// FrameConn is a framed TCP connection multiplexing concurrent calls by
// request id. Safe for concurrent use.
type FrameConn struct {
	conn     net.Conn
	writeMu  sync.Mutex
	pending  sync.Map // requestID -> chan *frameResponse
	nextID   atomic.Uint32
	closed   atomic.Bool
	readDone chan struct{}
}

type frameResponse struct {
	data []byte
	err  error
}

// FrameDial connects to a frame server
func FrameDial(ctx context.Context, addr string) (*FrameConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("frame dial: %w", err)
	}

	fc := &FrameConn{
		conn:     conn,
		readDone: make(chan struct{}),
	}
	go fc.readLoop()
	logger.Log.Debug("frame: connected to %s", addr)
	return fc, nil
}

// Call sends a request frame and blocks for the matching response.
// Frame layout: [4 len][1 type][4 reqID][2 methodLen][method][payload]
func (f *FrameConn) Call(ctx context.Context, method string, payload []byte) ([]byte, error) {
	if f.closed.Load() {
		return nil, ErrConnClosed
	}

	requestID := f.nextID.Add(1)
	respCh := make(chan *frameResponse, 1)
	f.pending.Store(requestID, respCh)
	defer f.pending.Delete(requestID)

	methodBytes := []byte(method)
	msgLen := 1 + 4 + 2 + len(methodBytes) + len(payload)

	buf := make([]byte, 4+msgLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(msgLen))
	buf[4] = byte(msgRequest)
	binary.BigEndian.PutUint32(buf[5:9], requestID)
	binary.BigEndian.PutUint16(buf[9:11], uint16(len(methodBytes)))
	copy(buf[11:], methodBytes)
	copy(buf[11+len(methodBytes):], payload)

	f.writeMu.Lock()
	_, err := f.conn.Write(buf)
	f.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("frame write: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case resp := <-respCh:
		if resp.err != nil {
			return nil, resp.err
		}
		return resp.data, nil
	case <-f.readDone:
		return nil, ErrConnClosed
	}
}

func (f *FrameConn) readLoop() {
	defer close(f.readDone)

	header := make([]byte, 4)
	for {
		if _, err := io.ReadFull(f.conn, header); err != nil {
			if !f.closed.Load() && !errors.Is(err, io.EOF) {
				logger.Log.Warn("frame: read loop ended: %v", err)
			}
			return
		}

		msgLen := binary.BigEndian.Uint32(header)
		if msgLen == 0 || msgLen > maxFrameLen {
			logger.Log.Error("frame: oversized message (%d bytes), dropping connection", msgLen)
			return
		}

		msg := make([]byte, msgLen)
		if _, err := io.ReadFull(f.conn, msg); err != nil {
			return
		}

		if len(msg) < 5 {
			continue
		}

		msgType := messageType(msg[0])
		requestID := binary.BigEndian.Uint32(msg[1:5])
		payload := msg[5:]

		if ch, ok := f.pending.Load(requestID); ok {
			respCh := ch.(chan *frameResponse)
			switch msgType {
			case msgResponse:
				respCh <- &frameResponse{data: payload}
			case msgError:
				respCh <- &frameResponse{err: errors.New(string(payload))}
			}
		}
	}
}

// Close closes the connection. Closing twice is a no-op.
func (f *FrameConn) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	return f.conn.Close()
}

// FrameServer handles incoming frame RPC requests
type FrameServer struct {
	listener net.Listener
	handler  FrameHandler
	conns    sync.Map
	closed   atomic.Bool
}

// FrameHandler handles frame requests
type FrameHandler interface {
	HandleFrame(ctx context.Context, method string, payload []byte) ([]byte, error)
}

// FrameHandlerFunc is a function adapter for FrameHandler
type FrameHandlerFunc func(ctx context.Context, method string, payload []byte) ([]byte, error)

func (fn FrameHandlerFunc) HandleFrame(ctx context.Context, method string, payload []byte) ([]byte, error) {
	return fn(ctx, method, payload)
}

// NewFrameServer creates a new frame server
func NewFrameServer(listener net.Listener, handler FrameHandler) *FrameServer {
	return &FrameServer{
		listener: listener,
		handler:  handler,
	}
}

// Serve starts serving requests
func (s *FrameServer) Serve(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *FrameServer) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	s.conns.Store(conn, struct{}{})
	defer s.conns.Delete(conn)

	header := make([]byte, 4)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			return
		}

		msgLen := binary.BigEndian.Uint32(header)
		if msgLen == 0 || msgLen > maxFrameLen {
			return
		}

		msg := make([]byte, msgLen)
		if _, err := io.ReadFull(conn, msg); err != nil {
			return
		}

		if len(msg) < 7 || messageType(msg[0]) != msgRequest {
			continue
		}

		requestID := binary.BigEndian.Uint32(msg[1:5])
		methodLen := binary.BigEndian.Uint16(msg[5:7])
		if len(msg) < 7+int(methodLen) {
			continue
		}
		method := string(msg[7 : 7+methodLen])
		payload := msg[7+methodLen:]

		go func() {
			respData, err := s.handler.HandleFrame(ctx, method, payload)
			s.sendResponse(conn, requestID, respData, err)
		}()
	}
}

func (s *FrameServer) sendResponse(conn net.Conn, requestID uint32, data []byte, err error) {
	var msgType messageType
	var payload []byte
	if err != nil {
		msgType = msgError
		payload = []byte(err.Error())
	} else {
		msgType = msgResponse
		payload = data
	}

	msgLen := 1 + 4 + len(payload)
	buf := make([]byte, 4+msgLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(msgLen))
	buf[4] = byte(msgType)
	binary.BigEndian.PutUint32(buf[5:9], requestID)
	copy(buf[9:], payload)

	conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	conn.Write(buf)
}

// Close closes the server and all live connections
func (s *FrameServer) Close() error {
	s.closed.Store(true)
	s.conns.Range(func(key, _ interface{}) bool {
		key.(net.Conn).Close()
		return true
	})
	return s.listener.Close()
}

// Addr returns the listener address
func (s *FrameServer) Addr() net.Addr {
	return s.listener.Addr()
}
