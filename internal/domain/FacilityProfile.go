package domain

import "time"

// Address é o endereço resumido da facility usado nos relatórios
type Address struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// FacilityProfile é o perfil da facility mantido pelo marketplace.
// O engine lê a identidade denormalizada (nome, tipo) ao criar registros
// de métricas e o CSM para o filtro das listagens.
type FacilityProfile struct {
	UserID                 string         `json:"user_id"`
	Name                   string         `json:"name"`
	Type                   string         `json:"type"`
	CustomerSuccessManager *string        `json:"customer_success_manager,omitempty"`
	FullAddress            *Address       `json:"full_address,omitempty"`
	QualifiedAgents        map[string]int `json:"qualified_agents,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
}
