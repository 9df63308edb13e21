package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/saidozsoy1/sports-betting-app/internal/analytics"
	"github.com/saidozsoy1/sports-betting-app/internal/basket"
	"github.com/saidozsoy1/sports-betting-app/internal/odds"
	"github.com/saidozsoy1/sports-betting-app/pkg/contracts/events"
)

// API expõe os endpoints REST consumidos pela camada de apresentação:
// listagem/busca de eventos, refresh das odds e operações do basket
type API struct {
	Log    *zap.Logger
	Agg    *odds.Aggregator
	Basket *basket.Basket
	Sink   analytics.Sink

	// WS é o handler opcional de /ws (Hub.HandleWS)
	WS http.HandlerFunc
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/events", a.listEvents)                        // lista (com ?q= de busca)
	r.Get("/v1/events/{id}", a.getEvent)                     // detalhe de um evento
	r.Post("/v1/events/refresh", a.refreshEvents)            // dispara fetchAll
	r.Get("/v1/basket", a.getBasket)                         // seleções correntes
	r.Post("/v1/basket/items", a.addBet)                     // adiciona seleção
	r.Delete("/v1/basket/items/{eventId}", a.removeBet)      // remove seleção
	r.Delete("/v1/basket", a.clearBasket)                    // esvazia o basket
	if a.WS != nil {
		r.Get("/ws", a.WS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listEvents retorna o snapshot corrente; ?q= faz busca case-insensitive
// por time ou esporte sem nova chamada de rede
func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	evs := a.Agg.Search(r.URL.Query().Get("q"))
	if evs == nil {
		evs = []odds.Event{}
	}
	writeJSON(w, http.StatusOK, EventsResponse{Count: len(evs), Events: evs})
}

// getEvent retorna o detalhe de um evento e registra match_detail_viewed
func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, ok := a.Agg.EventByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	a.Sink.MatchDetailViewed(events.MatchDetail{
		EventID:      ev.ID,
		SportTitle:   ev.SportTitle,
		HomeTeam:     ev.HomeTeam,
		AwayTeam:     ev.AwayTeam,
		CommenceTime: ev.CommenceTime,
	})
	writeJSON(w, http.StatusOK, ev)
}

// refreshEvents dispara o fan-out pelas quatro regiões e troca o snapshot
func (a *API) refreshEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := a.Agg.FetchAll(r.Context())
	if err != nil {
		a.Log.Warn("refresh failed", zap.Error(err))
		writeJSON(w, statusForFetchError(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, EventsResponse{Count: len(evs), Events: evs})
}

// statusForFetchError mapeia a taxonomia de erros do fetch para HTTP
func statusForFetchError(err error) int {
	switch {
	case errors.Is(err, odds.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, odds.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (a *API) getBasket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.basketResponse())
}

// addBet adiciona uma seleção; o nome do evento vem do snapshot corrente.
// Evento que já tem seleção responde 409 (a seleção existente não muda).
func (a *API) addBet(w http.ResponseWriter, r *http.Request) {
	var req AddBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.EventID == "" || req.OutcomeName == "" || req.OutcomePrice <= 0 || req.MarketKey == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ev, ok := a.Agg.EventByID(req.EventID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown event"})
		return
	}

	added := a.Basket.Add(
		ev.ID,
		ev.Name(),
		odds.Outcome{Name: req.OutcomeName, Price: req.OutcomePrice},
		req.MarketKey,
		req.BookmakerTitle,
	)
	if !added {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "event already in basket"})
		return
	}
	writeJSON(w, http.StatusCreated, a.basketResponse())
}

func (a *API) removeBet(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if !a.Basket.Remove(eventID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not in basket"})
		return
	}
	writeJSON(w, http.StatusOK, a.basketResponse())
}

func (a *API) clearBasket(w http.ResponseWriter, r *http.Request) {
	a.Basket.Clear()
	writeJSON(w, http.StatusOK, a.basketResponse())
}

func (a *API) basketResponse() BasketResponse {
	return BasketResponse{
		Items:               a.Basket.Items(),
		TotalPrice:          a.Basket.TotalPrice(),
		FormattedTotalPrice: a.Basket.FormattedTotalPrice(),
	}
}
