// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"net"
)

// Dial connects to an RPC server using the default transport (frame).
// Use WithTransport to select an alternative.
func Dial(ctx context.Context, addr string, opts ...DialOption) (Client, error) {
	o := &dialOptions{
		transport: DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}

	t, ok := lookupTransport(o.transport)
	if !ok {
		return nil, fmt.Errorf("unknown transport: %s", o.transport)
	}
	return t.dial(ctx, addr, o)
}

// Listen creates an RPC server listener using the default transport (frame).
func Listen(addr string, opts ...ServerOption) (Server, error) {
	o := &serverOptions{
		transport: DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}

	t, ok := lookupTransport(o.transport)
	if !ok {
		return nil, fmt.Errorf("unknown transport: %s", o.transport)
	}
	return t.listen(addr, o)
}

// dialFrame creates a frame client
func dialFrame(ctx context.Context, addr string, o *dialOptions) (Client, error) {
	conn, err := FrameDial(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &frameClient{
		conn:  conn,
		codec: o.codec,
	}, nil
}

// listenFrame creates a frame server
func listenFrame(addr string, o *serverOptions) (Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &frameServer{
		listener: listener,
		handlers: make(map[string]RawHandler),
		codec:    o.codec,
	}, nil
}

// frameClient implements Client over the frame transport
type frameClient struct {
	conn  *FrameConn
	codec Codec
}

func (c *frameClient) Call(ctx context.Context, method string, args, reply interface{}) error {
	codec := c.codec
	if codec == nil {
		codec = defaultCodec
	}

	var payload []byte
	var err error
	if args != nil {
		payload, err = codec.Encode(args)
		if err != nil {
			return fmt.Errorf("encode args: %w", err)
		}
	}

	resp, err := c.conn.Call(ctx, method, payload)
	if err != nil {
		return err
	}

	if reply != nil && len(resp) > 0 {
		if err := codec.Decode(resp, reply); err != nil {
			return fmt.Errorf("decode reply: %w", err)
		}
	}
	return nil
}

func (c *frameClient) CallRaw(ctx context.Context, method string, payload []byte) ([]byte, error) {
	return c.conn.Call(ctx, method, payload)
}

func (c *frameClient) Close() error {
	return c.conn.Close()
}

// frameServer implements Server over the frame transport
type frameServer struct {
	listener net.Listener
	handlers map[string]RawHandler
	server   *FrameServer
	codec    Codec
}

// RegisterRaw registers a handler. Must be called before Serve.
func (s *frameServer) RegisterRaw(method string, handler RawHandler) error {
	s.handlers[method] = handler
	return nil
}

func (s *frameServer) Serve(ctx context.Context) error {
	s.server = NewFrameServer(s.listener, FrameHandlerFunc(func(ctx context.Context, method string, payload []byte) ([]byte, error) {
		if method == MetaMethodSignature {
			return s.protocolSignature(payload)
		}
		handler, ok := s.handlers[method]
		if !ok {
			return nil, fmt.Errorf("unknown method: %s", method)
		}
		return handler(ctx, payload)
	}))
	return s.server.Serve(ctx)
}

// protocolSignature answers a capability probe from the registration table.
func (s *frameServer) protocolSignature(payload []byte) ([]byte, error) {
	codec := s.codec
	if codec == nil {
		codec = defaultCodec
	}

	var req ProtocolSignatureRequest
	if err := codec.Decode(payload, &req); err != nil {
		return nil, fmt.Errorf("decode signature request: %w", err)
	}
	return codec.Encode(ProtocolSignatureResponse{
		Methods: signatureMethods(s.handlers, req.Protocol),
	})
}

func (s *frameServer) Close() error {
	if s.server != nil {
		return s.server.Close()
	}
	return s.listener.Close()
}

func (s *frameServer) Addr() string {
	return s.listener.Addr().String()
}
