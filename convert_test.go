// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/namenode/wire"
)

func TestDatanodeIDRoundTrip(t *testing.T) {
	d := DatanodeID{
		IPAddr:   "10.0.0.7",
		Hostname: "dn7.example.com",
		UUID:     "b2f3c1d4-5e6f-4a7b-8c9d-0e1f2a3b4c5d",
		XferPort: 50010,
	}
	require.Equal(t, d, DatanodeIDFromWire(DatanodeIDToWire(d)))
}

func TestBlocksWithLocationsRoundTrip(t *testing.T) {
	b := BlocksWithLocations{
		Blocks: []BlockWithLocations{
			{
				Block:         Block{ID: 1001, NumBytes: 134217728, GenerationStamp: 17},
				DatanodeUUIDs: []string{"dn-a", "dn-b"},
				StorageIDs:    []string{"DS-1", "DS-2"},
			},
			{
				Block:         Block{ID: 1002, NumBytes: 42, GenerationStamp: 18},
				DatanodeUUIDs: []string{"dn-c"},
				StorageIDs:    []string{"DS-3"},
			},
		},
	}
	require.Equal(t, b, BlocksWithLocationsFromWire(BlocksWithLocationsToWire(b)))

	empty := BlocksWithLocations{}
	require.Equal(t, empty, BlocksWithLocationsFromWire(BlocksWithLocationsToWire(empty)))
}

func TestBlockKeysRoundTrip(t *testing.T) {
	k := BlockKeys{
		BlockTokenEnabled: true,
		KeyUpdateInterval: 600000,
		TokenLifetime:     3600000,
		CurrentKey:        BlockKey{KeyID: 3, ExpiryDate: 1700000000, Key: []byte{0xde, 0xad}},
		AllKeys: []BlockKey{
			{KeyID: 3, ExpiryDate: 1700000000, Key: []byte{0xde, 0xad}},
			{KeyID: 4, ExpiryDate: 1700003600, Key: []byte{0xbe, 0xef}},
		},
	}
	require.Equal(t, k, BlockKeysFromWire(BlockKeysToWire(k)))
}

func TestRegistrationRoundTrip(t *testing.T) {
	r := Registration{
		Address:       "nn1.example.com:8023",
		Role:          RoleBackup,
		NamespaceID:   7,
		LayoutVersion: 3,
	}
	require.Equal(t, r, RegistrationFromWire(RegistrationToWire(r)))
}

func TestCheckpointSignatureRoundTrip(t *testing.T) {
	s := CheckpointSignature{
		BlockPoolID:              "BP-7-10.0.0.1-1690000000000",
		MostRecentCheckpointTxID: 1200,
		CurSegmentTxID:           1300,
		LayoutVersion:            3,
		NamespaceID:              7,
		ClusterID:                "CID-test",
		CTime:                    1690000000000,
	}
	require.Equal(t, s, CheckpointSignatureFromWire(CheckpointSignatureToWire(s)))
}

func TestNamespaceInfoRoundTrip(t *testing.T) {
	n := NamespaceInfo{
		NamespaceID:     7,
		LayoutVersion:   3,
		ClusterID:       "CID-test",
		BlockPoolID:     "BP-7-10.0.0.1-1690000000000",
		BuildVersion:    "4.0.1 from deadbeef",
		SoftwareVersion: "4.0.1",
		CTime:           1690000000000,
	}
	require.Equal(t, n, NamespaceInfoFromWire(NamespaceInfoToWire(n)))
}

func TestCommandRoundTrip(t *testing.T) {
	plain := NamenodeCommand{Action: ActionShutdown}
	require.Equal(t, Command(plain), CommandFromWire(CommandToWire(plain)))

	cp := CheckpointCommand{
		NamenodeCommand: NamenodeCommand{Action: ActionCheckpoint},
		Signature: CheckpointSignature{
			BlockPoolID:    "BP-7",
			CurSegmentTxID: 99,
		},
		NeedToReturnImage: true,
	}
	require.Equal(t, Command(cp), CommandFromWire(CommandToWire(cp)))
}

func TestCommandFromWireDegradesWithoutPayload(t *testing.T) {
	// A checkpoint-typed record missing its payload converts to the
	// plain variant; converters are total over well-formed input.
	got := CommandFromWire(wire.NamenodeCommand{
		Action: uint32(ActionCheckpoint),
		Type:   wire.CommandCheckpoint,
	})
	require.Equal(t, Command(NamenodeCommand{Action: ActionCheckpoint}), got)
}

func TestEditLogManifestRoundTrip(t *testing.T) {
	m := EditLogManifest{
		Logs: []RemoteEditLog{
			{StartTxID: 1, EndTxID: 100, InProgress: false},
			{StartTxID: 101, EndTxID: 200, InProgress: false},
			{StartTxID: 201, EndTxID: 0, InProgress: true},
		},
		CommittedTxnID: 200,
	}
	require.Equal(t, m, EditLogManifestFromWire(EditLogManifestToWire(m)))

	empty := EditLogManifest{}
	require.Equal(t, empty, EditLogManifestFromWire(EditLogManifestToWire(empty)))
}
