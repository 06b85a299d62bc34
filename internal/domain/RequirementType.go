package domain

import "fmt"

// RequirementType é a qualificação exigida pelo plantão (papel do profissional).
// O conjunto é fixo; valores fora dele vindos do ledger são rejeitados na carga.
type RequirementType string

const (
	RequirementTypeRN        RequirementType = "RN"
	RequirementTypeLVN       RequirementType = "LVN"
	RequirementTypeCNA       RequirementType = "CNA"
	RequirementTypeNurse     RequirementType = "NURSE"
	RequirementTypeCaregiver RequirementType = "CAREGIVER"

	// RequirementTypeAll é a chave sintética reservada para o agregado da seção
	RequirementTypeAll RequirementType = "all"
)

// AllRequirementTypes lista os papéis reais (sem a chave sintética "all")
var AllRequirementTypes = []RequirementType{
	RequirementTypeRN,
	RequirementTypeLVN,
	RequirementTypeCNA,
	RequirementTypeNurse,
	RequirementTypeCaregiver,
}

// ParseRequirementType valida um papel vindo do ledger de plantões.
// A chave "all" é reservada ao agregado e não é aceita como papel.
func ParseRequirementType(s string) (RequirementType, error) {
	for _, rt := range AllRequirementTypes {
		if RequirementType(s) == rt {
			return rt, nil
		}
	}
	return "", fmt.Errorf("requirement type desconhecido: %q", s)
}

// ValidBreakdownKey aceita os papéis reais e a chave sintética "all"
func ValidBreakdownKey(rt RequirementType) bool {
	if rt == RequirementTypeAll {
		return true
	}
	_, err := ParseRequirementType(string(rt))
	return err == nil
}
