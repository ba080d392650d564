package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gswatchdog/gswatchdog/internal/errors"
)

// Protocol is a server query protocol.
type Protocol string

const (
	// A2S is the Source engine query protocol (A2S_INFO over UDP).
	A2S Protocol = "a2s"
)

// serverTypes maps each supported SERVER_TYPE to the protocol it is queried with.
var serverTypes = map[string]Protocol{
	"7d2d":       A2S,
	"arma3":      A2S,
	"ark":        A2S,
	"cs2":        A2S,
	"csgo":       A2S,
	"css":        A2S,
	"dayz":       A2S,
	"dods":       A2S,
	"gmod":       A2S,
	"hl2dm":      A2S,
	"insurgency": A2S,
	"l4d":        A2S,
	"l4d2":       A2S,
	"rust":       A2S,
	"tf2":        A2S,
}

// SupportedServerTypes returns the sorted list of server types that can be queried.
func SupportedServerTypes() []string {
	types := make([]string, 0, len(serverTypes))
	for t := range serverTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// ProtocolFor returns the query protocol used for the given server type.
func ProtocolFor(serverType string) (Protocol, error) {
	p, ok := serverTypes[strings.ToLower(strings.TrimSpace(serverType))]
	if !ok {
		return "", fmt.Errorf(
			"%w: '%s' (supported: %s)",
			errors.ErrUnsupportedServerType,
			serverType,
			strings.Join(SupportedServerTypes(), ", "),
		)
	}
	return p, nil
}
