package domain

import "time"

// Shift é o registro do ledger de plantões. O engine de métricas só lê.
type Shift struct {
	ID         string          `json:"id"`
	FacilityID string          `json:"facility_id"`
	AgentID    *string         `json:"agent_id,omitempty"` // presença => plantão preenchido
	AgentReq   RequirementType `json:"agent_req"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Time       float64         `json:"time"`   // horas faturáveis
	Charge     float64         `json:"charge"` // tarifa cobrada da facility
	Pay        float64         `json:"pay"`    // tarifa paga ao profissional
	Deleted    bool            `json:"deleted"`
	IsBillable bool            `json:"is_billable"` // taxa de cancelamento tardio
}

// ShiftRef é a projeção mínima usada para enriquecer eventos sem facility/start
type ShiftRef struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Start      time.Time `json:"start"`
}

// ShiftAggregate é uma linha crua da agregação por requirement type de uma janela
type ShiftAggregate struct {
	RequirementType RequirementType
	Requested       int64
	Filled          int64
	UniqueWorkers   int64
	ExpectedRevenue float64
	GrossRevenue    float64
	NetRevenue      float64
	TotalMargin     float64
}

// PeriodBucket é um período histórico com atividade, usado pelo backfill
type PeriodBucket struct {
	Start       time.Time
	FacilityIDs []string
}

// GranularityFlags indica quais granularidades o evento deve processar.
// Campo ausente vale true (o emissor só manda flags para restringir).
type GranularityFlags struct {
	Daily   *bool `json:"daily,omitempty"`
	Weekly  *bool `json:"weekly,omitempty"`
	Monthly *bool `json:"monthly,omitempty"`
}

// Enabled responde se a granularidade está habilitada nas flags
func (f *GranularityFlags) Enabled(g Granularity) bool {
	if f == nil {
		return true
	}

	var flag *bool
	switch g {
	case GranularityDaily:
		flag = f.Daily
	case GranularityWeekly:
		flag = f.Weekly
	case GranularityMonthly:
		flag = f.Monthly
	}

	return flag == nil || *flag
}

// ShiftUpdateEvent é o evento consumido do ciclo de vida de plantões
// (create/update/delete/fill/unfill), com entrega at-least-once
type ShiftUpdateEvent struct {
	EventID    string            `json:"event_id,omitempty"` // preenchido pelo bus na publicação
	ShiftID    string            `json:"shiftId,omitempty"`
	FacilityID string            `json:"facilityId,omitempty"`
	Start      *time.Time        `json:"start,omitempty"`
	Flags      *GranularityFlags `json:"flags,omitempty"`
}
