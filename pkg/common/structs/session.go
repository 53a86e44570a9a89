package structs

import (
	"errors"
	"fmt"
	"strings"
)

// Protocol identifies which bridge protocol a session was negotiated with
type Protocol string

const (
	// ProtocolQuery is the legacy RPC/query protocol reached through a docbroker
	ProtocolQuery Protocol = "query"
	// ProtocolREST is the REST protocol reached through an endpoint URL
	ProtocolREST Protocol = "rest"
)

var ErrInvalidConnectParams = errors.New("connect params must set exactly one of endpoint or docbroker")

// GetProtocol parses a protocol name
func GetProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case string(ProtocolQuery):
		return ProtocolQuery, nil
	case string(ProtocolREST):
		return ProtocolREST, nil
	default:
		return "", fmt.Errorf("unknown protocol %q, supported protocols are: query or rest", s)
	}
}

func (p Protocol) String() string {
	return string(p)
}

// ConnectParams carries the two mutually exclusive connect shapes. An Endpoint
// selects the REST protocol, a Docbroker selects the query protocol.
type ConnectParams struct {
	Endpoint   string `json:"endpoint,omitempty"`
	Docbroker  string `json:"docbroker,omitempty"`
	Port       int    `json:"port,omitempty"`
	Repository string `json:"repository"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// Protocol resolves which protocol the params describe.
func (c ConnectParams) Protocol() (Protocol, error) {
	hasEndpoint := strings.TrimSpace(c.Endpoint) != ""
	hasDocbroker := strings.TrimSpace(c.Docbroker) != ""

	switch {
	case hasEndpoint && !hasDocbroker:
		return ProtocolREST, nil
	case hasDocbroker && !hasEndpoint:
		return ProtocolQuery, nil
	default:
		return "", ErrInvalidConnectParams
	}
}

// String never includes the password
func (c ConnectParams) String() string {
	if c.Endpoint != "" {
		return fmt.Sprintf("%s@%s/%s", c.Username, c.Endpoint, c.Repository)
	}
	return fmt.Sprintf("%s@%s:%d/%s", c.Username, c.Docbroker, c.Port, c.Repository)
}
