// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

// Role is the role a registered namenode plays in the cluster.
type Role uint32

const (
	RoleNameNode   Role = 1
	RoleBackup     Role = 2
	RoleCheckpoint Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleNameNode:
		return "namenode"
	case RoleBackup:
		return "backup"
	case RoleCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// Registration is the identity a helper namenode presents when it
// registers, and the identity the primary hands back.
type Registration struct {
	Address       string
	Role          Role
	NamespaceID   uint32
	LayoutVersion uint32
}

// DatanodeID identifies a datanode when asking for its blocks.
type DatanodeID struct {
	IPAddr   string
	Hostname string
	UUID     string
	XferPort uint32
}

// Block is one block descriptor.
type Block struct {
	ID              uint64
	NumBytes        uint64
	GenerationStamp uint64
}

// BlockWithLocations pairs a block with the datanodes and storages
// currently holding it.
type BlockWithLocations struct {
	Block         Block
	DatanodeUUIDs []string
	StorageIDs    []string
}

// BlocksWithLocations is the ordered result of a block range query.
type BlocksWithLocations struct {
	Blocks []BlockWithLocations
}

// BlockKey is one cryptographic block-access key.
type BlockKey struct {
	KeyID      uint32
	ExpiryDate uint64
	Key        []byte
}

// BlockKeys is the key set a namenode exports to helper nodes. A nil
// *BlockKeys means the remote has issued no keys, which is distinct from
// an empty set.
type BlockKeys struct {
	BlockTokenEnabled bool
	KeyUpdateInterval uint64
	TokenLifetime     uint64
	CurrentKey        BlockKey
	AllKeys           []BlockKey
}

// CheckpointSignature names a checkpoint generation. The client treats it
// as an opaque token: it is produced by RollEditLog and handed back to
// EndCheckpoint unmodified.
type CheckpointSignature struct {
	BlockPoolID              string
	MostRecentCheckpointTxID uint64
	CurSegmentTxID           uint64
	LayoutVersion            uint32
	NamespaceID              uint32
	ClusterID                string
	CTime                    uint64
}

// NamespaceInfo is the static identity of the namespace, returned by the
// version query.
type NamespaceInfo struct {
	NamespaceID     uint32
	LayoutVersion   uint32
	ClusterID       string
	BlockPoolID     string
	BuildVersion    string
	SoftwareVersion string
	CTime           uint64
}

// CommandAction is the action code carried by a namenode command.
type CommandAction uint32

const (
	ActionShutdown   CommandAction = 50
	ActionCheckpoint CommandAction = 51
)

// Command is an instruction returned by the namenode. The client passes
// commands through without interpreting them; callers switch on the
// concrete type.
type Command interface {
	isNamenodeCommand()
}

// NamenodeCommand is the plain command variant.
type NamenodeCommand struct {
	Action CommandAction
}

func (NamenodeCommand) isNamenodeCommand() {}

// CheckpointCommand instructs a helper to take a checkpoint of the given
// signature, optionally returning the merged image afterwards.
type CheckpointCommand struct {
	NamenodeCommand
	Signature         CheckpointSignature
	NeedToReturnImage bool
}

// RemoteEditLog describes one edit-log segment held by the namenode.
type RemoteEditLog struct {
	StartTxID  uint64
	EndTxID    uint64
	InProgress bool
}

// EditLogManifest is an ordered run of edit-log segments starting from a
// requested transaction id.
type EditLogManifest struct {
	Logs           []RemoteEditLog
	CommittedTxnID uint64
}
