package storage

// NetworkMode selects where the router sends each operation.
type NetworkMode string

const (
	ModeStandalone NetworkMode = "standalone"
	ModeServer     NetworkMode = "server"
	ModeClient     NetworkMode = "client"
)

// NetworkConfig is the user-facing network setup, persisted inside the
// settings collection. The router only reads it.
type NetworkConfig struct {
	Mode       NetworkMode `json:"mode"`
	ServerIP   string      `json:"serverIP,omitempty"`
	ServerPort int         `json:"serverPort,omitempty"`
}

// IsClient reports whether remote routing applies: client mode without a
// configured server degrades to standalone semantics.
func (c NetworkConfig) IsClient() bool {
	return c.Mode == ModeClient && c.ServerIP != ""
}
