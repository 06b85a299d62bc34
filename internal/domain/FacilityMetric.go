package domain

import (
	"fmt"
	"time"
)

// ShiftCounts agrupa os contadores de plantões de uma janela
type ShiftCounts struct {
	Requested     float64 `json:"requested"`
	Filled        float64 `json:"filled"`
	FillRate      float64 `json:"fillRate"`
	UniqueWorkers float64 `json:"uniqueWorkers"`
}

// RevenueMetrics agrupa os valores financeiros de uma janela
type RevenueMetrics struct {
	Expected  float64 `json:"expected"`
	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
	AvgMargin float64 `json:"avgMargin"`
}

// Metric é o bloco armazenado por requirement type dentro de uma seção.
// Os campos previous* são copiados do período anterior pela cascata;
// os campos churn* seguem a convenção previous − current (positivo = queda).
type Metric struct {
	CurrentShifts  *ShiftCounts `json:"currentShifts,omitempty"`
	PreviousShifts *ShiftCounts `json:"previousShifts,omitempty"`
	ChurnShifts    *ShiftCounts `json:"churnShifts,omitempty"`

	CurrentRevenue  *RevenueMetrics `json:"currentRevenue,omitempty"`
	PreviousRevenue *RevenueMetrics `json:"previousRevenue,omitempty"`
	ChurnRevenue    *RevenueMetrics `json:"churnRevenue,omitempty"`
}

// Breakdown mapeia requirement type (incluindo a chave "all") para o Metric da seção
type Breakdown map[RequirementType]*Metric

// Validate garante que só chaves do enum (ou "all") chegaram do banco
func (b Breakdown) Validate() error {
	for key := range b {
		if !ValidBreakdownKey(key) {
			return fmt.Errorf("chave de breakdown inválida no registro de métricas: %q", key)
		}
	}
	return nil
}

// Keys retorna as chaves presentes no breakdown
func (b Breakdown) Keys() []RequirementType {
	keys := make([]RequirementType, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	return keys
}

// FacilityMetric é o registro persistido: um por (facilityId, date), com as
// seções daily/weekly/monthly independentes na mesma linha
type FacilityMetric struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facility_id"`
	FacilityType string    `json:"facility_type"`
	Name         string    `json:"name"`
	Date         time.Time `json:"date"` // início do período no fuso de referência

	Daily   Breakdown `json:"daily,omitempty"`
	Weekly  Breakdown `json:"weekly,omitempty"`
	Monthly Breakdown `json:"monthly,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section retorna a seção da granularidade informada (nil se nunca processada)
func (m *FacilityMetric) Section(g Granularity) Breakdown {
	switch g {
	case GranularityDaily:
		return m.Daily
	case GranularityWeekly:
		return m.Weekly
	case GranularityMonthly:
		return m.Monthly
	}
	return nil
}

// SetSection substitui por inteiro a seção da granularidade informada
func (m *FacilityMetric) SetSection(g Granularity, b Breakdown) {
	switch g {
	case GranularityDaily:
		m.Daily = b
	case GranularityWeekly:
		m.Weekly = b
	case GranularityMonthly:
		m.Monthly = b
	}
}

// FacilityMetricDetails é a resposta da consulta individual: registro mensal
// mais o perfil da facility
type FacilityMetricDetails struct {
	Metric   *FacilityMetric  `json:"metric"`
	Facility *FacilityProfile `json:"facility"`
}
