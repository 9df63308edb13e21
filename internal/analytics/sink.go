package analytics

import (
	"github.com/saidozsoy1/sports-betting-app/pkg/contracts/events"
)

// Sink recebe eventos de analytics do core. A entrega é fire-and-forget:
// falhas no sink nunca afetam o estado do chamador.
type Sink interface {
	MatchDetailViewed(ev events.MatchDetail)
	AddToCart(item events.CartItem)
	RemoveFromCart(item events.CartItem)
}

// Nop descarta todos os eventos
type Nop struct{}

func (Nop) MatchDetailViewed(events.MatchDetail) {}
func (Nop) AddToCart(events.CartItem)            {}
func (Nop) RemoveFromCart(events.CartItem)       {}
