package basket

import (
	"fmt"

	"github.com/saidozsoy1/sports-betting-app/internal/odds"
)

// BetItem é uma seleção do usuário. É uma cópia independente dos dados do
// evento de origem: remover ou atualizar eventos não invalida o item.
// Igualdade é a do struct inteiro (todos os campos).
type BetItem struct {
	EventID        string       `json:"event_id"`
	EventName      string       `json:"event_name"`
	Outcome        odds.Outcome `json:"outcome"`
	MarketKey      string       `json:"market_key"`
	BookmakerTitle string       `json:"bookmaker_title"`
}

// FormattedPrice formata o price da seleção com duas casas decimais
func (b BetItem) FormattedPrice() string {
	return fmt.Sprintf("%.2f", b.Outcome.Price)
}
