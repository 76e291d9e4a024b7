// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/namenode/rpc"
	"github.com/luxfi/namenode/wire"
)

// End-to-end coverage: translator -> frame transport -> fake namenode.

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

func respondWith(v interface{}) rpc.RawHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		return codec.Marshal(v)
	}
}

func startFakeNamenode(t *testing.T) *Translator {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := rpc.Listen(":0")
	require.NoError(t, err)
	t.Cleanup(func() { server.Close() })

	server.RegisterRaw(MethodVersionRequest, respondWith(wire.VersionResponse{
		Info: wire.NamespaceInfo{NamespaceID: 7, LayoutVersion: 3},
	}))
	// No keys issued: the response omits the keys field entirely.
	server.RegisterRaw(MethodGetBlockKeys, respondWith(wire.GetBlockKeysResponse{}))
	server.RegisterRaw(MethodGetTransactionID, respondWith(wire.GetTransactionIDResponse{TxID: 4711}))
	server.RegisterRaw(MethodGetBlocks, func(ctx context.Context, payload []byte) ([]byte, error) {
		var req wire.GetBlocksRequest
		if err := codec.Unmarshal(payload, &req); err != nil {
			return nil, err
		}
		if req.Datanode.UUID != "dn-n" || req.Size != 1000 ||
			req.MinBlockSize != 10 || req.TimeInterval != 5 {
			return nil, errors.New("unexpected request parameters")
		}
		return codec.Marshal(wire.GetBlocksResponse{
			Blocks: wire.BlocksWithLocations{
				Blocks: []wire.BlockWithLocations{
					{Block: wire.Block{ID: 11, NumBytes: 64}, DatanodeUUIDs: []string{"dn-n"}},
					{Block: wire.Block{ID: 12, NumBytes: 65}, DatanodeUUIDs: []string{"dn-n"}},
					{Block: wire.Block{ID: 13, NumBytes: 66}, DatanodeUUIDs: []string{"dn-n"}},
				},
			},
		})
	})
	server.RegisterRaw(MethodRollEditLog, respondWith(wire.RollEditLogResponse{
		Signature: wire.CheckpointSignature{BlockPoolID: "BP-7", CurSegmentTxID: 4712},
	}))

	go server.Serve(ctx)
	time.Sleep(10 * time.Millisecond)

	client, err := rpc.Dial(ctx, server.Addr())
	require.NoError(t, err)

	nn := NewTranslator(client)
	t.Cleanup(func() { nn.Close() })
	return nn
}

func TestEndToEndVersionRequest(t *testing.T) {
	nn := startFakeNamenode(t)

	info, err := nn.VersionRequest()
	require.NoError(t, err)
	require.Equal(t, uint32(7), info.NamespaceID)
	require.Equal(t, uint32(3), info.LayoutVersion)
}

func TestEndToEndGetBlockKeysAbsent(t *testing.T) {
	nn := startFakeNamenode(t)

	keys, err := nn.GetBlockKeys()
	require.NoError(t, err)
	require.Nil(t, keys)
}

func TestEndToEndGetBlocks(t *testing.T) {
	nn := startFakeNamenode(t)

	got, err := nn.GetBlocks(DatanodeID{UUID: "dn-n"}, 1000, 10, 5)
	require.NoError(t, err)
	require.Len(t, got.Blocks, 3)
	require.Equal(t, uint64(11), got.Blocks[0].Block.ID)
	require.Equal(t, uint64(12), got.Blocks[1].Block.ID)
	require.Equal(t, uint64(13), got.Blocks[2].Block.ID)
}

func TestEndToEndRollEditLog(t *testing.T) {
	nn := startFakeNamenode(t)

	sig, err := nn.RollEditLog()
	require.NoError(t, err)
	require.Equal(t, "BP-7", sig.BlockPoolID)
	require.Equal(t, uint64(4712), sig.CurSegmentTxID)
}

func TestEndToEndCapabilityProbe(t *testing.T) {
	nn := startFakeNamenode(t)

	for _, method := range []string{
		MethodVersionRequest,
		MethodGetBlockKeys,
		MethodGetTransactionID,
		MethodGetBlocks,
		MethodRollEditLog,
	} {
		ok, err := nn.IsMethodSupported(method)
		require.NoError(t, err)
		require.True(t, ok, "%s should be supported", method)
	}

	ok, err := nn.IsMethodSupported("ShrinkNamespace")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEndToEndUnimplementedMethodFails(t *testing.T) {
	nn := startFakeNamenode(t)

	// Registered nowhere on the fake namenode: the remote-side fault
	// surfaces as a call failure, not a default value.
	_, err := nn.GetMostRecentCheckpointTxID()
	require.Error(t, err)
}

func TestEndToEndCloseThenCall(t *testing.T) {
	nn := startFakeNamenode(t)

	require.NoError(t, nn.Close())

	_, err := nn.VersionRequest()
	require.Error(t, err)
}
