// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

// Protocol identity used for wire method names and capability probes.
const (
	ProtocolName    = "NamenodeProtocol"
	ProtocolVersion = 1
)

// Fully qualified wire method names, one per operation.
const (
	MethodGetBlocks                   = ProtocolName + ".GetBlocks"
	MethodGetBlockKeys                = ProtocolName + ".GetBlockKeys"
	MethodGetTransactionID            = ProtocolName + ".GetTransactionID"
	MethodGetMostRecentCheckpointTxID = ProtocolName + ".GetMostRecentCheckpointTxID"
	MethodRollEditLog                 = ProtocolName + ".RollEditLog"
	MethodVersionRequest              = ProtocolName + ".VersionRequest"
	MethodErrorReport                 = ProtocolName + ".ErrorReport"
	MethodRegisterSubordinate         = ProtocolName + ".RegisterSubordinate"
	MethodStartCheckpoint             = ProtocolName + ".StartCheckpoint"
	MethodEndCheckpoint               = ProtocolName + ".EndCheckpoint"
	MethodGetEditLogManifest          = ProtocolName + ".GetEditLogManifest"
	MethodIsUpgradeFinalized          = ProtocolName + ".IsUpgradeFinalized"
	MethodIsRollingUpgrade            = ProtocolName + ".IsRollingUpgrade"
	MethodGetNextMaintenancePath      = ProtocolName + ".GetNextMaintenancePath"
)

// NamenodeProtocol is the maintenance and checkpoint surface a namenode
// exposes to helper nodes (backup/checkpoint namenodes, the balancer).
// Every operation is a synchronous blocking call; failures from the
// underlying channel surface verbatim. Deadlines, retries and
// cancellation belong to the channel, not to this interface.
type NamenodeProtocol interface {
	// GetBlocks returns up to size bytes worth of blocks held by the
	// given datanode, skipping blocks smaller than minBlockSize and, when
	// timeInterval is non-zero, blocks modified inside that interval.
	GetBlocks(datanode DatanodeID, size, minBlockSize, timeInterval uint64) (BlocksWithLocations, error)

	// GetBlockKeys returns the current exported block-access keys, or nil
	// when the remote has no keys to hand out. nil is a normal result,
	// not an error, and is distinct from an empty key set.
	GetBlockKeys() (*BlockKeys, error)

	// GetTransactionID returns the transaction id of the last edit-log
	// entry written by the namenode.
	GetTransactionID() (uint64, error)

	// GetMostRecentCheckpointTxID returns the transaction id of the most
	// recently consumed checkpoint.
	GetMostRecentCheckpointTxID() (uint64, error)

	// RollEditLog closes the current edit-log segment and opens a new
	// one, returning the signature of the new checkpoint generation.
	RollEditLog() (CheckpointSignature, error)

	// VersionRequest returns the namespace identity of the remote.
	VersionRequest() (NamespaceInfo, error)

	// ErrorReport reports a helper-side error to the namenode.
	ErrorReport(reg Registration, errorCode uint32, msg string) error

	// RegisterSubordinate registers a helper namenode and returns its
	// possibly updated registration.
	RegisterSubordinate(reg Registration) (Registration, error)

	// StartCheckpoint announces the start of a checkpoint and returns the
	// command the namenode issues in response, uninterpreted.
	StartCheckpoint(reg Registration) (Command, error)

	// EndCheckpoint announces the end of the checkpoint named by sig.
	EndCheckpoint(reg Registration, sig CheckpointSignature) error

	// GetEditLogManifest returns the edit-log segments available since
	// the given transaction id; boundary semantics are the remote's.
	GetEditLogManifest(sinceTxID uint64) (EditLogManifest, error)

	// IsUpgradeFinalized reports whether the namespace upgrade has been
	// finalized.
	IsUpgradeFinalized() (bool, error)

	// IsRollingUpgrade reports whether a rolling upgrade is in progress.
	IsRollingUpgrade() (bool, error)

	// GetNextMaintenancePath returns the next path scheduled for storage
	// maintenance, or nil when none is pending.
	GetNextMaintenancePath() (*string, error)

	// IsMethodSupported reports whether the remote implements the named
	// operation, without invoking it. Bare names are qualified with the
	// protocol name.
	IsMethodSupported(method string) (bool, error)
}
