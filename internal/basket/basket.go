package basket

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/saidozsoy1/sports-betting-app/internal/analytics"
	"github.com/saidozsoy1/sports-betting-app/internal/odds"
	"github.com/saidozsoy1/sports-betting-app/pkg/contracts/events"
)

// Listener é notificado a cada mutação do basket
type Listener func()

type listenerEntry struct {
	id int
	fn Listener
}

// Basket mantém as seleções correntes do usuário, no máximo uma por evento
// (invariante: nunca dois itens com o mesmo EventID). Instância injetável,
// nunca persistida; todo o estado é em memória.
//
// Todas as operações são protegidas por mutex, inclusive a sequência
// checa-duplicata-e-anexa do Add. Notificações são entregues de forma
// síncrona, na ordem de inscrição, fora do lock; um listener inscrito
// durante uma notificação não recebe a notificação em andamento.
type Basket struct {
	log  *zap.Logger
	sink analytics.Sink

	OnAdd    func() // métricas (counter++)
	OnRemove func() // métricas
	OnClear  func() // métricas

	mu        sync.Mutex
	items     []BetItem
	listeners []listenerEntry
	nextID    int
}

func New(log *zap.Logger, sink analytics.Sink) *Basket {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &Basket{log: log, sink: sink}
}

// Subscribe registra um listener e retorna a função de cancelamento.
// A entrega segue a ordem de inscrição.
func (b *Basket) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Add insere uma nova seleção no fim da coleção e retorna true.
// Se o evento já tem uma seleção, nada muda e retorna false: a seleção
// existente nunca é substituída; para trocar é preciso Remove antes.
func (b *Basket) Add(eventID, eventName string, outcome odds.Outcome, marketKey, bookmakerTitle string) bool {
	item := BetItem{
		EventID:        eventID,
		EventName:      eventName,
		Outcome:        outcome,
		MarketKey:      marketKey,
		BookmakerTitle: bookmakerTitle,
	}

	b.mu.Lock()
	for _, it := range b.items {
		if it.EventID == eventID {
			b.mu.Unlock()
			return false
		}
	}
	b.items = append(b.items, item)
	fns := b.snapshotListeners()
	b.mu.Unlock()

	b.log.Debug("bet added", zap.String("eventId", eventID), zap.String("outcome", outcome.Name))
	if b.OnAdd != nil {
		b.OnAdd()
	}
	b.sink.AddToCart(cartItem(item))
	notify(fns)
	return true
}

// Remove retira a seleção do evento, se presente; notifica apenas quando
// algo de fato foi removido.
func (b *Basket) Remove(eventID string) bool {
	b.mu.Lock()
	idx := -1
	for i, it := range b.items {
		if it.EventID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	removed := b.items[idx]
	b.items = append(b.items[:idx], b.items[idx+1:]...)
	fns := b.snapshotListeners()
	b.mu.Unlock()

	b.log.Debug("bet removed", zap.String("eventId", eventID))
	if b.OnRemove != nil {
		b.OnRemove()
	}
	b.sink.RemoveFromCart(cartItem(removed))
	notify(fns)
	return true
}

// Clear esvazia a coleção incondicionalmente e sempre notifica
func (b *Basket) Clear() {
	b.mu.Lock()
	b.items = nil
	fns := b.snapshotListeners()
	b.mu.Unlock()

	if b.OnClear != nil {
		b.OnClear()
	}
	notify(fns)
}

// Items retorna uma cópia das seleções na ordem de inserção
func (b *Basket) Items() []BetItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BetItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Basket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Contains informa se o evento já tem uma seleção no basket
func (b *Basket) Contains(eventID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, it := range b.items {
		if it.EventID == eventID {
			return true
		}
	}
	return false
}

// TotalPrice é o produto dos prices de todas as seleções (odds combinadas,
// estilo parlay). Basket vazio vale 1.0 (produto vazio).
func (b *Basket) TotalPrice() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 1.0
	for _, it := range b.items {
		total *= it.Outcome.Price
	}
	return total
}

// FormattedTotalPrice formata o total com exatamente duas casas decimais
func (b *Basket) FormattedTotalPrice() string {
	return fmt.Sprintf("%.2f", b.TotalPrice())
}

// snapshotListeners copia a lista corrente; chamar com o lock preso
func (b *Basket) snapshotListeners() []Listener {
	fns := make([]Listener, len(b.listeners))
	for i, e := range b.listeners {
		fns[i] = e.fn
	}
	return fns
}

func notify(fns []Listener) {
	for _, fn := range fns {
		fn()
	}
}

func cartItem(it BetItem) events.CartItem {
	return events.CartItem{
		EventID:     it.EventID,
		EventName:   it.EventName,
		OutcomeName: it.Outcome.Name,
		Price:       it.Outcome.Price,
		Bookmaker:   it.BookmakerTitle,
		MarketKey:   it.MarketKey,
	}
}
