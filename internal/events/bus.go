package events

import (
	"context"
	"sync"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/caretide/facility-metrics-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TopicShiftUpdateFacilityMetric é o tópico dos eventos do ciclo de vida de
// plantões consumidos pelo engine de métricas
const TopicShiftUpdateFacilityMetric = "shiftUpdate-facilityMetric"

// defaultMaxInFlight espelha o limite de mensagens simultâneas por consumidor
// do sistema de entrega original
const defaultMaxInFlight = 3

// Handler processa um evento entregue pelo bus. Erros são apenas logados aqui:
// retry/backoff é responsabilidade da camada de entrega upstream
// (at-least-once).
type Handler func(ctx context.Context, event domain.ShiftUpdateEvent) error

type SubscribeOption func(*subscription)

// WithMaxInFlight limita quantas entregas simultâneas a inscrição aceita
func WithMaxInFlight(n int) SubscribeOption {
	return func(s *subscription) {
		if n > 0 {
			s.semaphore = make(chan struct{}, n)
		}
	}
}

type subscription struct {
	handler   Handler
	semaphore chan struct{}
}

// Bus é o registro explícito de inscrições por tópico, injetado nos serviços
// em vez de um singleton global. Cada inscrição processa no máximo
// maxInFlight eventos ao mesmo tempo.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]*subscription
	wg   sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]*subscription),
	}
}

func (b *Bus) Subscribe(topic string, handler Handler, opts ...SubscribeOption) {
	sub := &subscription{
		handler:   handler,
		semaphore: make(chan struct{}, defaultMaxInFlight),
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], sub)
}

// Publish entrega o evento a todas as inscrições do tópico sem bloquear o
// publicador; cada entrega espera uma vaga no semáforo da inscrição
func (b *Bus) Publish(ctx context.Context, topic string, event domain.ShiftUpdateEvent) {
	if event.EventID == "" {
		if id, err := utils.GenerateID(); err == nil {
			event.EventID = id
		}
	}

	b.mu.RLock()
	subs := b.subs[topic]
	b.mu.RUnlock()

	if len(subs) == 0 {
		logrus.WithField("topic", topic).Warn("Evento publicado em tópico sem inscrições")
		return
	}

	for _, sub := range subs {
		b.wg.Add(1)

		go func(sub *subscription) {
			defer b.wg.Done()

			sub.semaphore <- struct{}{}
			defer func() { <-sub.semaphore }()

			if err := sub.handler(ctx, event); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"topic":    topic,
					"event_id": event.EventID,
				}).Error("Erro ao processar evento")
			}
		}(sub)
	}
}

// Wait bloqueia até todas as entregas em andamento terminarem (shutdown e testes)
func (b *Bus) Wait() {
	b.wg.Wait()
}
