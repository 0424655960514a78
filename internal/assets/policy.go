package assets

import (
	"fmt"
	"strings"
)

// AttachPolicy decides what happens when the hat finishes loading.
type AttachPolicy int

const (
	// AttachAwaitPrimary attaches the hat to the penguin whenever the penguin is ready,
	// regardless of which load finishes first.
	AttachAwaitPrimary AttachPolicy = iota
	// AttachIfReady attaches the hat only if the penguin is already in the scene and
	// drops it otherwise.
	AttachIfReady
)

func (p AttachPolicy) String() string {
	switch p {
	case AttachAwaitPrimary:
		return "await"
	case AttachIfReady:
		return "ifready"
	default:
		return fmt.Sprintf("AttachPolicy(%d)", int(p))
	}
}

// ParseAttachPolicy parses "await" or "ifready", ignoring case.
//
// Parameters:
//   - s: the policy name
//
// Returns:
//   - AttachPolicy: the parsed policy
//   - error: error if s names no policy
func ParseAttachPolicy(s string) (AttachPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "await", "":
		return AttachAwaitPrimary, nil
	case "ifready", "if-ready":
		return AttachIfReady, nil
	}
	return AttachAwaitPrimary, fmt.Errorf("assets: unknown attach policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p AttachPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *AttachPolicy) UnmarshalText(text []byte) error {
	v, err := ParseAttachPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
