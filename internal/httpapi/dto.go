package httpapi

import (
	"github.com/saidozsoy1/sports-betting-app/internal/basket"
	"github.com/saidozsoy1/sports-betting-app/internal/odds"
)

// AddBetRequest é o corpo do POST /v1/basket/items
type AddBetRequest struct {
	EventID        string  `json:"event_id"`
	OutcomeName    string  `json:"outcome_name"`
	OutcomePrice   float64 `json:"outcome_price"`
	MarketKey      string  `json:"market_key"`
	BookmakerTitle string  `json:"bookmaker_title"`
}

// EventsResponse envolve a lista de eventos com a contagem
type EventsResponse struct {
	Count  int          `json:"count"`
	Events []odds.Event `json:"events"`
}

// BasketResponse é a visão do basket exposta à camada de apresentação
type BasketResponse struct {
	Items               []basket.BetItem `json:"items"`
	TotalPrice          float64          `json:"totalPrice"`
	FormattedTotalPrice string           `json:"formattedTotalPrice"`
}
