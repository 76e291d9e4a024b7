// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire holds the request/response records exchanged with a
// namenode over the RPC channel. Records are inert data: they carry
// exactly the fields the remote contract defines and nothing else.
// Optional response fields are pointers so that absence survives the
// codec and is distinguishable from a zero value.
package wire

// DatanodeID identifies a datanode on the wire.
type DatanodeID struct {
	IPAddr   string
	Hostname string
	UUID     string
	XferPort uint32
}

// Block is a single block descriptor.
type Block struct {
	ID              uint64
	NumBytes        uint64
	GenerationStamp uint64
}

// BlockWithLocations pairs a block with the nodes and storages holding it.
type BlockWithLocations struct {
	Block         Block
	DatanodeUUIDs []string
	StorageIDs    []string
}

// BlocksWithLocations is an ordered set of located blocks.
type BlocksWithLocations struct {
	Blocks []BlockWithLocations
}

// BlockKey is one cryptographic block-access key.
type BlockKey struct {
	KeyID      uint32
	ExpiryDate uint64
	KeyBytes   []byte
}

// ExportedBlockKeys is the full key set handed to helper nodes.
type ExportedBlockKeys struct {
	IsBlockTokenEnabled bool
	KeyUpdateInterval   uint64
	TokenLifetime       uint64
	CurrentKey          BlockKey
	AllKeys             []BlockKey
}

// NamenodeRegistration identifies a (helper) namenode.
type NamenodeRegistration struct {
	RPCAddress    string
	Role          uint32
	NamespaceID   uint32
	LayoutVersion uint32
}

// CheckpointSignature is the token naming a checkpoint generation. The
// client transports it opaquely.
type CheckpointSignature struct {
	BlockPoolID              string
	MostRecentCheckpointTxID uint64
	CurSegmentTxID           uint64
	LayoutVersion            uint32
	NamespaceID              uint32
	ClusterID                string
	CTime                    uint64
}

// NamespaceInfo is the static identity of a namespace/cluster.
type NamespaceInfo struct {
	NamespaceID     uint32
	LayoutVersion   uint32
	ClusterID       string
	BlockPoolID     string
	BuildVersion    string
	SoftwareVersion string
	CTime           uint64
}

// Command type discriminators for NamenodeCommand.
const (
	CommandPlain      uint32 = 0
	CommandCheckpoint uint32 = 1
)

// CheckpointCommand is the checkpoint-specific command payload.
type CheckpointCommand struct {
	Signature         CheckpointSignature
	NeedToReturnImage bool
}

// NamenodeCommand is the polymorphic instruction a namenode returns.
// CheckpointCmd is set only when Type is CommandCheckpoint.
type NamenodeCommand struct {
	Action        uint32
	Type          uint32
	CheckpointCmd *CheckpointCommand
}

// RemoteEditLog describes one edit-log segment.
type RemoteEditLog struct {
	StartTxID    uint64
	EndTxID      uint64
	IsInProgress bool
}

// RemoteEditLogManifest is an ordered run of edit-log segments.
type RemoteEditLogManifest struct {
	Logs           []RemoteEditLog
	CommittedTxnID uint64
}

// GetBlocksRequest asks for blocks of a datanode, bounded by total size,
// minimum block size and modification time interval.
type GetBlocksRequest struct {
	Datanode     DatanodeID
	Size         uint64
	MinBlockSize uint64
	TimeInterval uint64
}

// GetBlocksResponse carries the located blocks.
type GetBlocksResponse struct {
	Blocks BlocksWithLocations
}

// GetBlockKeysRequest has no parameters.
type GetBlockKeysRequest struct{}

// GetBlockKeysResponse carries the current key set; Keys is nil when the
// remote has no keys to hand out.
type GetBlockKeysResponse struct {
	Keys *ExportedBlockKeys
}

// GetTransactionIDRequest has no parameters.
type GetTransactionIDRequest struct{}

// GetTransactionIDResponse carries the current transaction id.
type GetTransactionIDResponse struct {
	TxID uint64
}

// GetMostRecentCheckpointTxIDRequest has no parameters.
type GetMostRecentCheckpointTxIDRequest struct{}

// GetMostRecentCheckpointTxIDResponse carries the tx id of the most
// recent checkpoint.
type GetMostRecentCheckpointTxIDResponse struct {
	TxID uint64
}

// RollEditLogRequest has no parameters.
type RollEditLogRequest struct{}

// RollEditLogResponse carries the signature of the new checkpoint
// generation.
type RollEditLogResponse struct {
	Signature CheckpointSignature
}

// VersionRequest has no parameters.
type VersionRequest struct{}

// VersionResponse carries the namespace identity.
type VersionResponse struct {
	Info NamespaceInfo
}

// ErrorReportRequest reports a helper-side error to the namenode.
type ErrorReportRequest struct {
	Registration NamenodeRegistration
	ErrorCode    uint32
	Msg          string
}

// ErrorReportResponse acknowledges an error report.
type ErrorReportResponse struct{}

// RegisterRequest registers a helper namenode.
type RegisterRequest struct {
	Registration NamenodeRegistration
}

// RegisterResponse echoes the (possibly updated) registration.
type RegisterResponse struct {
	Registration NamenodeRegistration
}

// StartCheckpointRequest announces the start of a checkpoint.
type StartCheckpointRequest struct {
	Registration NamenodeRegistration
}

// StartCheckpointResponse carries the command the namenode issues back.
type StartCheckpointResponse struct {
	Command NamenodeCommand
}

// EndCheckpointRequest announces the end of a checkpoint generation.
type EndCheckpointRequest struct {
	Registration NamenodeRegistration
	Signature    CheckpointSignature
}

// EndCheckpointResponse acknowledges the end of a checkpoint.
type EndCheckpointResponse struct{}

// GetEditLogManifestRequest asks for the edit-log segments since a
// transaction id. SinceTxID is transported verbatim; the remote defines
// the boundary semantics.
type GetEditLogManifestRequest struct {
	SinceTxID uint64
}

// GetEditLogManifestResponse carries the manifest.
type GetEditLogManifestResponse struct {
	Manifest RemoteEditLogManifest
}

// IsUpgradeFinalizedRequest has no parameters.
type IsUpgradeFinalizedRequest struct{}

// IsUpgradeFinalizedResponse answers the upgrade-finalized query.
type IsUpgradeFinalizedResponse struct {
	IsUpgradeFinalized bool
}

// IsRollingUpgradeRequest has no parameters.
type IsRollingUpgradeRequest struct{}

// IsRollingUpgradeResponse answers the rolling-upgrade query.
type IsRollingUpgradeResponse struct {
	IsRollingUpgrade bool
}

// GetNextMaintenancePathRequest has no parameters.
type GetNextMaintenancePathRequest struct{}

// GetNextMaintenancePathResponse carries the next path scheduled for
// maintenance; Path is nil when none is pending.
type GetNextMaintenancePathResponse struct {
	Path *string
}
