// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package namenode

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/luxfi/namenode/rpc"
	"github.com/luxfi/namenode/wire"
)

// ErrClosed is returned for operations invoked after Close.
var ErrClosed = errors.New("namenode: translator closed")

// Requests with no parameters are built once and shared by every call.
// They are never mutated, so concurrent reuse is safe.
var (
	voidGetBlockKeysRequest                = &wire.GetBlockKeysRequest{}
	voidGetTransactionIDRequest            = &wire.GetTransactionIDRequest{}
	voidGetMostRecentCheckpointTxIDRequest = &wire.GetMostRecentCheckpointTxIDRequest{}
	voidRollEditLogRequest                 = &wire.RollEditLogRequest{}
	voidVersionRequest                     = &wire.VersionRequest{}
	voidIsUpgradeFinalizedRequest          = &wire.IsUpgradeFinalizedRequest{}
	voidIsRollingUpgradeRequest            = &wire.IsRollingUpgradeRequest{}
	voidGetNextMaintenancePathRequest      = &wire.GetNextMaintenancePathRequest{}
)

// Translator is the client-side implementation of NamenodeProtocol. It
// turns each operation into a wire request, dispatches it through the
// channel it was constructed with, and converts the response back into
// domain values. It performs no retries and holds no state beyond the
// channel reference; failures from the channel surface verbatim.
type Translator struct {
	client rpc.Client
	closed atomic.Bool
}

var _ NamenodeProtocol = (*Translator)(nil)

// NewTranslator wraps a channel. The translator owns the channel from
// here on: Close tears it down.
func NewTranslator(client rpc.Client) *Translator {
	return &Translator{client: client}
}

// Close releases the underlying channel. Only the first call closes the
// channel; later calls are no-ops. Every operation invoked after Close
// fails with ErrClosed.
func (t *Translator) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	return t.client.Close()
}

// UnderlyingClient exposes the wrapped channel, for layers that stack
// policy (failover, accounting) on top of the translator.
func (t *Translator) UnderlyingClient() rpc.Client {
	return t.client
}

// call is the single funnel every operation goes through. Operations
// carry no deadline or cancellation; those belong to the channel.
func (t *Translator) call(method string, args, reply interface{}) error {
	if t.closed.Load() {
		return ErrClosed
	}
	return t.client.Call(context.Background(), method, args, reply)
}

// GetBlocks implements NamenodeProtocol.
func (t *Translator) GetBlocks(datanode DatanodeID, size, minBlockSize, timeInterval uint64) (BlocksWithLocations, error) {
	req := &wire.GetBlocksRequest{
		Datanode:     DatanodeIDToWire(datanode),
		Size:         size,
		MinBlockSize: minBlockSize,
		TimeInterval: timeInterval,
	}
	var resp wire.GetBlocksResponse
	if err := t.call(MethodGetBlocks, req, &resp); err != nil {
		return BlocksWithLocations{}, err
	}
	return BlocksWithLocationsFromWire(resp.Blocks), nil
}

// GetBlockKeys implements NamenodeProtocol. A response without keys maps
// to nil, never to an empty set.
func (t *Translator) GetBlockKeys() (*BlockKeys, error) {
	var resp wire.GetBlockKeysResponse
	if err := t.call(MethodGetBlockKeys, voidGetBlockKeysRequest, &resp); err != nil {
		return nil, err
	}
	if resp.Keys == nil {
		return nil, nil
	}
	keys := BlockKeysFromWire(*resp.Keys)
	return &keys, nil
}

// GetTransactionID implements NamenodeProtocol.
func (t *Translator) GetTransactionID() (uint64, error) {
	var resp wire.GetTransactionIDResponse
	if err := t.call(MethodGetTransactionID, voidGetTransactionIDRequest, &resp); err != nil {
		return 0, err
	}
	return resp.TxID, nil
}

// GetMostRecentCheckpointTxID implements NamenodeProtocol.
func (t *Translator) GetMostRecentCheckpointTxID() (uint64, error) {
	var resp wire.GetMostRecentCheckpointTxIDResponse
	if err := t.call(MethodGetMostRecentCheckpointTxID, voidGetMostRecentCheckpointTxIDRequest, &resp); err != nil {
		return 0, err
	}
	return resp.TxID, nil
}

// RollEditLog implements NamenodeProtocol.
func (t *Translator) RollEditLog() (CheckpointSignature, error) {
	var resp wire.RollEditLogResponse
	if err := t.call(MethodRollEditLog, voidRollEditLogRequest, &resp); err != nil {
		return CheckpointSignature{}, err
	}
	return CheckpointSignatureFromWire(resp.Signature), nil
}

// VersionRequest implements NamenodeProtocol.
func (t *Translator) VersionRequest() (NamespaceInfo, error) {
	var resp wire.VersionResponse
	if err := t.call(MethodVersionRequest, voidVersionRequest, &resp); err != nil {
		return NamespaceInfo{}, err
	}
	return NamespaceInfoFromWire(resp.Info), nil
}

// ErrorReport implements NamenodeProtocol.
func (t *Translator) ErrorReport(reg Registration, errorCode uint32, msg string) error {
	req := &wire.ErrorReportRequest{
		Registration: RegistrationToWire(reg),
		ErrorCode:    errorCode,
		Msg:          msg,
	}
	var resp wire.ErrorReportResponse
	return t.call(MethodErrorReport, req, &resp)
}

// RegisterSubordinate implements NamenodeProtocol.
func (t *Translator) RegisterSubordinate(reg Registration) (Registration, error) {
	req := &wire.RegisterRequest{Registration: RegistrationToWire(reg)}
	var resp wire.RegisterResponse
	if err := t.call(MethodRegisterSubordinate, req, &resp); err != nil {
		return Registration{}, err
	}
	return RegistrationFromWire(resp.Registration), nil
}

// StartCheckpoint implements NamenodeProtocol.
func (t *Translator) StartCheckpoint(reg Registration) (Command, error) {
	req := &wire.StartCheckpointRequest{Registration: RegistrationToWire(reg)}
	var resp wire.StartCheckpointResponse
	if err := t.call(MethodStartCheckpoint, req, &resp); err != nil {
		return nil, err
	}
	return CommandFromWire(resp.Command), nil
}

// EndCheckpoint implements NamenodeProtocol.
func (t *Translator) EndCheckpoint(reg Registration, sig CheckpointSignature) error {
	req := &wire.EndCheckpointRequest{
		Registration: RegistrationToWire(reg),
		Signature:    CheckpointSignatureToWire(sig),
	}
	var resp wire.EndCheckpointResponse
	return t.call(MethodEndCheckpoint, req, &resp)
}

// GetEditLogManifest implements NamenodeProtocol.
func (t *Translator) GetEditLogManifest(sinceTxID uint64) (EditLogManifest, error) {
	req := &wire.GetEditLogManifestRequest{SinceTxID: sinceTxID}
	var resp wire.GetEditLogManifestResponse
	if err := t.call(MethodGetEditLogManifest, req, &resp); err != nil {
		return EditLogManifest{}, err
	}
	return EditLogManifestFromWire(resp.Manifest), nil
}

// IsUpgradeFinalized implements NamenodeProtocol.
func (t *Translator) IsUpgradeFinalized() (bool, error) {
	var resp wire.IsUpgradeFinalizedResponse
	if err := t.call(MethodIsUpgradeFinalized, voidIsUpgradeFinalizedRequest, &resp); err != nil {
		return false, err
	}
	return resp.IsUpgradeFinalized, nil
}

// IsRollingUpgrade implements NamenodeProtocol.
func (t *Translator) IsRollingUpgrade() (bool, error) {
	var resp wire.IsRollingUpgradeResponse
	if err := t.call(MethodIsRollingUpgrade, voidIsRollingUpgradeRequest, &resp); err != nil {
		return false, err
	}
	return resp.IsRollingUpgrade, nil
}

// GetNextMaintenancePath implements NamenodeProtocol. A response without
// a path maps to nil.
func (t *Translator) GetNextMaintenancePath() (*string, error) {
	var resp wire.GetNextMaintenancePathResponse
	if err := t.call(MethodGetNextMaintenancePath, voidGetNextMaintenancePathRequest, &resp); err != nil {
		return nil, err
	}
	return resp.Path, nil
}

// IsMethodSupported implements NamenodeProtocol via the channel's
// signature introspection; the probed method is never invoked.
func (t *Translator) IsMethodSupported(method string) (bool, error) {
	if t.closed.Load() {
		return false, ErrClosed
	}
	if !strings.Contains(method, ".") {
		method = ProtocolName + "." + method
	}
	return rpc.IsMethodSupported(context.Background(), t.client, ProtocolName, ProtocolVersion, method)
}
