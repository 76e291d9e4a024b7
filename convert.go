// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

import (
	"github.com/luxfi/namenode/wire"
)

// Converters between domain values and wire records. All are pure, total
// over well-formed input, and round-trip: ToWire followed by FromWire
// yields a field-for-field equal value. Optionality never reaches a
// converter; the translator resolves optional fields before converting.

// DatanodeIDToWire converts a datanode identity to its wire record.
func DatanodeIDToWire(d DatanodeID) wire.DatanodeID {
	return wire.DatanodeID{
		IPAddr:   d.IPAddr,
		Hostname: d.Hostname,
		UUID:     d.UUID,
		XferPort: d.XferPort,
	}
}

// DatanodeIDFromWire converts a wire datanode identity to its domain value.
func DatanodeIDFromWire(w wire.DatanodeID) DatanodeID {
	return DatanodeID{
		IPAddr:   w.IPAddr,
		Hostname: w.Hostname,
		UUID:     w.UUID,
		XferPort: w.XferPort,
	}
}

// BlockToWire converts a block descriptor to its wire record.
func BlockToWire(b Block) wire.Block {
	return wire.Block{
		ID:              b.ID,
		NumBytes:        b.NumBytes,
		GenerationStamp: b.GenerationStamp,
	}
}

// BlockFromWire converts a wire block descriptor to its domain value.
func BlockFromWire(w wire.Block) Block {
	return Block{
		ID:              w.ID,
		NumBytes:        w.NumBytes,
		GenerationStamp: w.GenerationStamp,
	}
}

// BlocksWithLocationsToWire converts a located-blocks set to wire form,
// preserving order.
func BlocksWithLocationsToWire(b BlocksWithLocations) wire.BlocksWithLocations {
	out := wire.BlocksWithLocations{}
	if len(b.Blocks) > 0 {
		out.Blocks = make([]wire.BlockWithLocations, len(b.Blocks))
	}
	for i, blk := range b.Blocks {
		out.Blocks[i] = wire.BlockWithLocations{
			Block:         BlockToWire(blk.Block),
			DatanodeUUIDs: blk.DatanodeUUIDs,
			StorageIDs:    blk.StorageIDs,
		}
	}
	return out
}

// BlocksWithLocationsFromWire converts a wire located-blocks set to its
// domain value, preserving order.
func BlocksWithLocationsFromWire(w wire.BlocksWithLocations) BlocksWithLocations {
	out := BlocksWithLocations{}
	if len(w.Blocks) > 0 {
		out.Blocks = make([]BlockWithLocations, len(w.Blocks))
	}
	for i, blk := range w.Blocks {
		out.Blocks[i] = BlockWithLocations{
			Block:         BlockFromWire(blk.Block),
			DatanodeUUIDs: blk.DatanodeUUIDs,
			StorageIDs:    blk.StorageIDs,
		}
	}
	return out
}

// BlockKeyToWire converts one block key to its wire record.
func BlockKeyToWire(k BlockKey) wire.BlockKey {
	return wire.BlockKey{
		KeyID:      k.KeyID,
		ExpiryDate: k.ExpiryDate,
		KeyBytes:   k.Key,
	}
}

// BlockKeyFromWire converts one wire block key to its domain value.
func BlockKeyFromWire(w wire.BlockKey) BlockKey {
	return BlockKey{
		KeyID:      w.KeyID,
		ExpiryDate: w.ExpiryDate,
		Key:        w.KeyBytes,
	}
}

// BlockKeysToWire converts an exported key set to its wire record.
func BlockKeysToWire(k BlockKeys) wire.ExportedBlockKeys {
	out := wire.ExportedBlockKeys{
		IsBlockTokenEnabled: k.BlockTokenEnabled,
		KeyUpdateInterval:   k.KeyUpdateInterval,
		TokenLifetime:       k.TokenLifetime,
		CurrentKey:          BlockKeyToWire(k.CurrentKey),
	}
	if len(k.AllKeys) > 0 {
		out.AllKeys = make([]wire.BlockKey, len(k.AllKeys))
		for i, key := range k.AllKeys {
			out.AllKeys[i] = BlockKeyToWire(key)
		}
	}
	return out
}

// BlockKeysFromWire converts a wire key set to its domain value.
func BlockKeysFromWire(w wire.ExportedBlockKeys) BlockKeys {
	out := BlockKeys{
		BlockTokenEnabled: w.IsBlockTokenEnabled,
		KeyUpdateInterval: w.KeyUpdateInterval,
		TokenLifetime:     w.TokenLifetime,
		CurrentKey:        BlockKeyFromWire(w.CurrentKey),
	}
	if len(w.AllKeys) > 0 {
		out.AllKeys = make([]BlockKey, len(w.AllKeys))
		for i, key := range w.AllKeys {
			out.AllKeys[i] = BlockKeyFromWire(key)
		}
	}
	return out
}

// RegistrationToWire converts a registration to its wire record.
func RegistrationToWire(r Registration) wire.NamenodeRegistration {
	return wire.NamenodeRegistration{
		RPCAddress:    r.Address,
		Role:          uint32(r.Role),
		NamespaceID:   r.NamespaceID,
		LayoutVersion: r.LayoutVersion,
	}
}

// RegistrationFromWire converts a wire registration to its domain value.
func RegistrationFromWire(w wire.NamenodeRegistration) Registration {
	return Registration{
		Address:       w.RPCAddress,
		Role:          Role(w.Role),
		NamespaceID:   w.NamespaceID,
		LayoutVersion: w.LayoutVersion,
	}
}

// CheckpointSignatureToWire converts a signature to its wire record.
func CheckpointSignatureToWire(s CheckpointSignature) wire.CheckpointSignature {
	return wire.CheckpointSignature{
		BlockPoolID:              s.BlockPoolID,
		MostRecentCheckpointTxID: s.MostRecentCheckpointTxID,
		CurSegmentTxID:           s.CurSegmentTxID,
		LayoutVersion:            s.LayoutVersion,
		NamespaceID:              s.NamespaceID,
		ClusterID:                s.ClusterID,
		CTime:                    s.CTime,
	}
}

// CheckpointSignatureFromWire converts a wire signature to its domain
// value.
func CheckpointSignatureFromWire(w wire.CheckpointSignature) CheckpointSignature {
	return CheckpointSignature{
		BlockPoolID:              w.BlockPoolID,
		MostRecentCheckpointTxID: w.MostRecentCheckpointTxID,
		CurSegmentTxID:           w.CurSegmentTxID,
		LayoutVersion:            w.LayoutVersion,
		NamespaceID:              w.NamespaceID,
		ClusterID:                w.ClusterID,
		CTime:                    w.CTime,
	}
}

// NamespaceInfoToWire converts a namespace identity to its wire record.
func NamespaceInfoToWire(n NamespaceInfo) wire.NamespaceInfo {
	return wire.NamespaceInfo{
		NamespaceID:     n.NamespaceID,
		LayoutVersion:   n.LayoutVersion,
		ClusterID:       n.ClusterID,
		BlockPoolID:     n.BlockPoolID,
		BuildVersion:    n.BuildVersion,
		SoftwareVersion: n.SoftwareVersion,
		CTime:           n.CTime,
	}
}

// NamespaceInfoFromWire converts a wire namespace identity to its domain
// value.
func NamespaceInfoFromWire(w wire.NamespaceInfo) NamespaceInfo {
	return NamespaceInfo{
		NamespaceID:     w.NamespaceID,
		LayoutVersion:   w.LayoutVersion,
		ClusterID:       w.ClusterID,
		BlockPoolID:     w.BlockPoolID,
		BuildVersion:    w.BuildVersion,
		SoftwareVersion: w.SoftwareVersion,
		CTime:           w.CTime,
	}
}

// CommandToWire converts a command to its wire record.
func CommandToWire(c Command) wire.NamenodeCommand {
	switch cmd := c.(type) {
	case CheckpointCommand:
		sig := CheckpointSignatureToWire(cmd.Signature)
		return wire.NamenodeCommand{
			Action: uint32(cmd.Action),
			Type:   wire.CommandCheckpoint,
			CheckpointCmd: &wire.CheckpointCommand{
				Signature:         sig,
				NeedToReturnImage: cmd.NeedToReturnImage,
			},
		}
	case NamenodeCommand:
		return wire.NamenodeCommand{
			Action: uint32(cmd.Action),
			Type:   wire.CommandPlain,
		}
	default:
		return wire.NamenodeCommand{Type: wire.CommandPlain}
	}
}

// CommandFromWire converts a wire command to its domain value. A
// checkpoint-typed record without its payload degrades to the plain
// variant rather than failing.
func CommandFromWire(w wire.NamenodeCommand) Command {
	if w.Type == wire.CommandCheckpoint && w.CheckpointCmd != nil {
		return CheckpointCommand{
			NamenodeCommand:   NamenodeCommand{Action: CommandAction(w.Action)},
			Signature:         CheckpointSignatureFromWire(w.CheckpointCmd.Signature),
			NeedToReturnImage: w.CheckpointCmd.NeedToReturnImage,
		}
	}
	return NamenodeCommand{Action: CommandAction(w.Action)}
}

// EditLogManifestToWire converts a manifest to its wire record,
// preserving segment order.
func EditLogManifestToWire(m EditLogManifest) wire.RemoteEditLogManifest {
	out := wire.RemoteEditLogManifest{CommittedTxnID: m.CommittedTxnID}
	if len(m.Logs) > 0 {
		out.Logs = make([]wire.RemoteEditLog, len(m.Logs))
	}
	for i, l := range m.Logs {
		out.Logs[i] = wire.RemoteEditLog{
			StartTxID:    l.StartTxID,
			EndTxID:      l.EndTxID,
			IsInProgress: l.InProgress,
		}
	}
	return out
}

// EditLogManifestFromWire converts a wire manifest to its domain value,
// preserving segment order.
func EditLogManifestFromWire(w wire.RemoteEditLogManifest) EditLogManifest {
	out := EditLogManifest{CommittedTxnID: w.CommittedTxnID}
	if len(w.Logs) > 0 {
		out.Logs = make([]RemoteEditLog, len(w.Logs))
	}
	for i, l := range w.Logs {
		out.Logs[i] = RemoteEditLog{
			StartTxID:  l.StartTxID,
			EndTxID:    l.EndTxID,
			InProgress: l.IsInProgress,
		}
	}
	return out
}
