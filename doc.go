// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package namenode is the typed client for the namenode maintenance and
// checkpoint protocol: the surface a primary metadata node exposes to
// backup/checkpoint helpers and the balancer.
//
// The package is a pure translation layer. Each NamenodeProtocol
// operation builds a wire request (see the wire package), dispatches it
// synchronously through an rpc.Client channel, and converts the response
// back into domain values. It adds no retries, no caching and no
// ordering beyond what the channel provides, and it propagates channel
// failures verbatim.
//
//	client, err := rpc.Dial(ctx, "nn0.example.com:8023")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nn := namenode.NewTranslator(client)
//	defer nn.Close() // also closes the channel
//
//	info, err := nn.VersionRequest()
//	sig, err := nn.RollEditLog()
//
// Two operations have optional results: GetBlockKeys and
// GetNextMaintenancePath return nil (with a nil error) when the remote's
// response omits the field, which is distinct from an empty value.
package namenode
