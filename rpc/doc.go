// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpc is the channel layer beneath the namenode protocol
// translator: a blocking call primitive over swappable transports.
//
// # Transport Selection
//
// The framed TCP transport is the default. JSON-RPC 2.0 over HTTP is
// always available; gRPC requires a build tag:
//
//	go build              # frame + json
//	go build -tags grpc   # also enable gRPC transport
//
// # Usage
//
//	client, err := rpc.Dial(ctx, "nn0.example.com:8023")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	var resp GetTransactionIDResponse
//	err = client.Call(ctx, "NamenodeProtocol.GetTransactionID", req, &resp)
//
// Servers register raw handlers keyed by "Protocol.Method" names:
//
//	server, err := rpc.Listen(":8023")
//	server.RegisterRaw("NamenodeProtocol.RollEditLog", handleRollEditLog)
//	server.Serve(ctx)
//
// Every server additionally answers the reserved protocol-signature
// method (see MetaMethodSignature) listing its registered methods, which
// backs capability probing without invoking the probed method.
//
// # Architecture
//
//   - client.go: transport-agnostic Client and Server interfaces
//   - codec.go: Codec interface, json-iterator default
//   - transport.go: transport registry for build-tag extensibility
//   - dial.go: Dial and Listen factories, frame client/server
//   - frame.go: framed TCP transport (default)
//   - jsonrpc.go: JSON-RPC 2.0 over HTTP client
//   - dial_grpc.go: gRPC transport (requires -tags grpc)
//   - meta.go: protocol signature introspection
//
// Application code should only depend on the Client/Server interfaces,
// making transport selection a deployment decision rather than a code
// change.
package rpc
