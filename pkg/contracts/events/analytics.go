package events

// Nomes dos eventos de analytics publicados no tópico "analytics_events"
const (
	MatchDetailViewed = "match_detail_viewed"
	AddToCart         = "add_to_cart"
	RemoveFromCart    = "remove_from_cart"
)

// MatchDetail é o payload do evento "match_detail_viewed"
type MatchDetail struct {
	EventID      string `json:"event_id"`
	SportTitle   string `json:"sport_title"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	CommenceTime string `json:"commence_time"`
}

// CartItem é o payload dos eventos "add_to_cart" e "remove_from_cart"
type CartItem struct {
	EventID     string  `json:"event_id"`
	EventName   string  `json:"event_name"`
	OutcomeName string  `json:"outcome_name"`
	Price       float64 `json:"price"`
	Bookmaker   string  `json:"bookmaker"`
	MarketKey   string  `json:"market_key"`
}
