package employee

import (
	"encoding/json"
	"fmt"

	"folharh/internal/storage"
)

// Employee is the typed view of one employee record as it travels in
// collection envelopes. Monetary amounts are in Kwanzas.
type Employee struct {
	ID                   string         `json:"id"`
	FirstName            string         `json:"firstName"`
	LastName             string         `json:"lastName"`
	IdentityCard         string         `json:"identityCard"`
	NIF                  string         `json:"nif"`
	SocialSecurityNumber string         `json:"socialSecurityNumber"`
	BirthDate            string         `json:"birthDate"`
	HireDate             string         `json:"hireDate"`
	Position             string         `json:"position"`
	Department           string         `json:"department"`
	BranchID             string         `json:"branchId"`
	BaseSalary           float64        `json:"baseSalary"`
	FoodAllowance        float64        `json:"foodAllowance"`
	TransportAllowance   float64        `json:"transportAllowance"`
	FamilyAllowance      float64        `json:"familyAllowance"`
	Dependents           float64        `json:"dependents"`
	BankName             string         `json:"bankName"`
	BankAccount          string         `json:"bankAccount"`
	Phone                string         `json:"phone"`
	Email                string         `json:"email"`
	IsActive             bool           `json:"isActive"`
	Address              map[string]any `json:"address,omitempty"`
}

// FullName joins the given and family names for display.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// GrossSalary is the base salary plus the fixed allowances.
func (e Employee) GrossSalary() float64 {
	return e.BaseSalary + e.FoodAllowance + e.TransportAllowance + e.FamilyAllowance
}

// FromEnvelope decodes the employees array out of a collection envelope.
func FromEnvelope(env *storage.Envelope) ([]Employee, error) {
	raw, ok := env.State["employees"]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var employees []Employee
	if err := json.Unmarshal(raw, &employees); err != nil {
		return nil, fmt.Errorf("estado de funcionários inválido: %w", err)
	}
	return employees, nil
}
