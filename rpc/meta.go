// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"sort"
	"strings"
)

// MetaMethodSignature is the reserved method every in-tree server answers
// with the registered method names of a protocol. It lets clients probe
// whether a remote implements a method without invoking it.
const MetaMethodSignature = "_meta.ProtocolSignature"

// ProtocolSignatureRequest asks a server which methods of a protocol it
// serves. Version is advisory; servers serving a single protocol version
// may ignore it.
type ProtocolSignatureRequest struct {
	Protocol string
	Version  uint64
}

// ProtocolSignatureResponse lists the fully qualified method names
// ("Protocol.Method") registered for the requested protocol.
type ProtocolSignatureResponse struct {
	Methods []string
}

// IsMethodSupported probes the remote's signature for a fully qualified
// method name. It never invokes the method itself.
func IsMethodSupported(ctx context.Context, c Client, protocol string, version uint64, method string) (bool, error) {
	var resp ProtocolSignatureResponse
	req := ProtocolSignatureRequest{Protocol: protocol, Version: version}
	if err := c.Call(ctx, MetaMethodSignature, req, &resp); err != nil {
		return false, err
	}
	for _, m := range resp.Methods {
		if m == method {
			return true, nil
		}
	}
	return false, nil
}

// signatureMethods filters a registration table down to one protocol's
// methods, sorted for stable responses.
func signatureMethods(handlers map[string]RawHandler, protocol string) []string {
	prefix := protocol + "."
	methods := make([]string, 0, len(handlers))
	for name := range handlers {
		if strings.HasPrefix(name, prefix) {
			methods = append(methods, name)
		}
	}
	sort.Strings(methods)
	return methods
}
