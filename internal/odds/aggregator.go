package odds

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Fetcher abstrai o client do provedor de odds
type Fetcher interface {
	FetchUpcoming(ctx context.Context, region Region, market string) ([]Event, error)
}

// SnapshotStore persiste o snapshot de odds no banco (best effort)
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, evs []Event) error
}

// SnapshotCache guarda o snapshot filtrado no cache (best effort)
type SnapshotCache interface {
	Set(ctx context.Context, evs []Event) error
	Get(ctx context.Context) ([]Event, bool, error)
}

// Aggregator busca as odds h2h das quatro regiões em paralelo, faz o merge
// na ordem fixa das regiões e mantém o último snapshot filtrado em memória.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Aggregator struct {
	Log   *zap.Logger
	Fetch Fetcher
	Store SnapshotStore // opcional
	Cache SnapshotCache // opcional

	OnRegionOK    func(region string) // métricas (counter++)
	OnRegionError func(region string) // métricas
	OnDropped     func(n int)         // eventos descartados pelo filtro
	OnRefreshed   func(total int)     // snapshot atualizado

	mu     sync.RWMutex
	events []Event
}

// FetchAll dispara uma requisição por região, espera todas completarem e
// falha com o primeiro erro observado; em caso de sucesso concatena os
// resultados na ordem US, UK, EU, AU (sem deduplicar entre regiões, o
// provedor retorna conjuntos escopados por região), aplica o filtro de odds
// utilizáveis e troca o snapshot corrente.
// Em caso de falha o snapshot anterior é preservado.
func (a *Aggregator) FetchAll(ctx context.Context) ([]Event, error) {
	fns := make([]func(ctx context.Context) ([]Event, error), len(Regions))
	for i, region := range Regions {
		region := region // per-iteration copy; required while go.mod targets go < 1.22
		fns[i] = func(ctx context.Context) ([]Event, error) {
			evs, err := a.Fetch.FetchUpcoming(ctx, region, MarketH2H)
			if err != nil {
				a.Log.Warn("region fetch failed", zap.String("region", string(region)), zap.Error(err))
				if a.OnRegionError != nil {
					a.OnRegionError(string(region))
				}
				return nil, err
			}
			if a.OnRegionOK != nil {
				a.OnRegionOK(string(region))
			}
			return evs, nil
		}
	}

	perRegion, err := gatherAll(ctx, fns)
	if err != nil {
		return nil, err
	}

	var merged []Event
	for _, evs := range perRegion {
		merged = append(merged, evs...)
	}

	kept := make([]Event, 0, len(merged))
	for _, ev := range merged {
		if ev.HasUsableOdds() {
			kept = append(kept, ev)
		}
	}
	if dropped := len(merged) - len(kept); dropped > 0 {
		a.Log.Debug("events without usable odds dropped", zap.Int("dropped", dropped))
		if a.OnDropped != nil {
			a.OnDropped(dropped)
		}
	}

	a.mu.Lock()
	a.events = kept
	a.mu.Unlock()

	// cache e persistência nunca falham o fetch
	if a.Cache != nil {
		if err := a.Cache.Set(ctx, kept); err != nil {
			a.Log.Warn("snapshot cache set failed", zap.Error(err))
		}
	}
	if a.Store != nil {
		if err := a.Store.SaveSnapshot(ctx, kept); err != nil {
			a.Log.Warn("snapshot persist failed", zap.Error(err))
		}
	}

	if a.OnRefreshed != nil {
		a.OnRefreshed(len(kept))
	}
	return a.Events(), nil
}

// Restore recarrega o último snapshot do cache; usado no boot para servir
// eventos antes do primeiro fetch completar. Retorna false se não há snapshot.
func (a *Aggregator) Restore(ctx context.Context) bool {
	if a.Cache == nil {
		return false
	}
	evs, ok, err := a.Cache.Get(ctx)
	if err != nil {
		a.Log.Warn("snapshot cache get failed", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	a.mu.Lock()
	a.events = evs
	a.mu.Unlock()
	a.Log.Info("snapshot restored from cache", zap.Int("events", len(evs)))
	return true
}

// Events retorna uma cópia do snapshot corrente, na ordem do merge
func (a *Aggregator) Events() []Event {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// EventByID procura um evento no snapshot corrente
func (a *Aggregator) EventByID(id string) (Event, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, ev := range a.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// Search filtra o snapshot corrente por substring case-insensitive no time
// mandante, visitante ou título do esporte. Query vazia retorna tudo.
// Não dispara nova chamada de rede.
func (a *Aggregator) Search(query string) []Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return a.Events()
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []Event
	for _, ev := range a.events {
		if strings.Contains(strings.ToLower(ev.HomeTeam), q) ||
			strings.Contains(strings.ToLower(ev.AwayTeam), q) ||
			strings.Contains(strings.ToLower(ev.SportTitle), q) {
			out = append(out, ev)
		}
	}
	return out
}
