package settings

import (
	"encoding/json"
	"fmt"

	"folharh/internal/storage"
)

// Settings is the single company-wide configuration record. It also
// carries the persisted network topology the storage router follows.
type Settings struct {
	ID               string  `json:"id"`
	CompanyName      string  `json:"companyName"`
	CompanyNIF       string  `json:"companyNif"`
	Address          string  `json:"address"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Currency         string  `json:"currency"`
	Language         string  `json:"language"`
	PayrollDay       float64 `json:"payrollDay"`
	SelectedProvince string  `json:"selectedProvince"`
	NetworkMode      string  `json:"networkMode"`
	ServerIP         string  `json:"serverIP"`
	ServerPort       float64 `json:"serverPort"`
}

// Network converts the persisted network fields into the routing config
// the storage layer consumes. An unknown mode falls back to standalone.
func (s Settings) Network() storage.NetworkConfig {
	mode := storage.NetworkMode(s.NetworkMode)
	switch mode {
	case storage.ModeStandalone, storage.ModeServer, storage.ModeClient:
	default:
		mode = storage.ModeStandalone
	}
	return storage.NetworkConfig{
		Mode:       mode,
		ServerIP:   s.ServerIP,
		ServerPort: int(s.ServerPort),
	}
}

// FromEnvelope decodes the settings object out of a collection envelope.
func FromEnvelope(env *storage.Envelope) (Settings, error) {
	raw, ok := env.State["settings"]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return Settings{}, nil
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("estado de configurações inválido: %w", err)
	}
	return s, nil
}
