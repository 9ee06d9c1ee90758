package branch

import (
	"encoding/json"
	"fmt"

	"folharh/internal/storage"
)

// Branch is the typed view of one branch office record. Province here is
// the branch's own location, not the tenant scope the data lives under.
type Branch struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Province       string `json:"province"`
	Municipality   string `json:"municipality"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	ManagerName    string `json:"managerName"`
	IsHeadquarters bool   `json:"isHeadquarters"`
	IsActive       bool   `json:"isActive"`
}

// FromEnvelope decodes the branches array out of a collection envelope.
func FromEnvelope(env *storage.Envelope) ([]Branch, error) {
	raw, ok := env.State["branches"]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var branches []Branch
	if err := json.Unmarshal(raw, &branches); err != nil {
		return nil, fmt.Errorf("estado de filiais inválido: %w", err)
	}
	return branches, nil
}
