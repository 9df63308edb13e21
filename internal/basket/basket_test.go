package basket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saidozsoy1/sports-betting-app/internal/odds"
	"github.com/saidozsoy1/sports-betting-app/pkg/contracts/events"
)

type captureSink struct {
	mu      sync.Mutex
	added   []events.CartItem
	removed []events.CartItem
	viewed  []events.MatchDetail
}

func (s *captureSink) AddToCart(item events.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, item)
}

func (s *captureSink) RemoveFromCart(item events.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, item)
}

func (s *captureSink) MatchDetailViewed(ev events.MatchDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewed = append(s.viewed, ev)
}

func newTestBasket() (*Basket, *captureSink) {
	sink := &captureSink{}
	return New(zap.NewNop(), sink), sink
}

func TestAddAndDuplicate(t *testing.T) {
	b, sink := newTestBasket()

	ok := b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	require.True(t, ok)
	require.Equal(t, 1, b.Len())

	// mesma partida com outcome diferente: no-op, seleção original intacta
	ok = b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Chelsea", Price: 2.0}, "h2h", "Bookmaker 1")
	assert.False(t, ok)
	require.Equal(t, 1, b.Len())

	items := b.Items()
	assert.Equal(t, "Arsenal", items[0].Outcome.Name)
	assert.Equal(t, 1.8, items[0].Outcome.Price)

	// analytics só para o add efetivo
	assert.Len(t, sink.added, 1)
	assert.Equal(t, "event1", sink.added[0].EventID)
	assert.Equal(t, "Arsenal", sink.added[0].OutcomeName)
}

func TestNoTwoItemsSameEvent(t *testing.T) {
	b, _ := newTestBasket()

	for i := 0; i < 10; i++ {
		b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	}

	seen := map[string]int{}
	for _, it := range b.Items() {
		seen[it.EventID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "eventId %s duplicado", id)
	}
}

func TestConcurrentDuplicateAdds(t *testing.T) {
	b, _ := newTestBasket()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, b.Len())
}

func TestRemoveThenReAdd(t *testing.T) {
	b, sink := newTestBasket()

	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	b.Add("event2", "Barcelona vs Real Madrid", odds.Outcome{Name: "Barcelona", Price: 1.5}, "h2h", "Bookmaker 1")

	require.True(t, b.Remove("event1"))
	assert.Len(t, sink.removed, 1)

	ok := b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Chelsea", Price: 2.1}, "h2h", "Bookmaker 1")
	require.True(t, ok)

	// reaparece no fim da ordem de inserção
	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "event2", items[0].EventID)
	assert.Equal(t, "event1", items[1].EventID)
	assert.Equal(t, "Chelsea", items[1].Outcome.Name)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	b, sink := newTestBasket()

	var notified int
	b.Subscribe(func() { notified++ })

	assert.False(t, b.Remove("nope"))
	assert.Zero(t, notified)
	assert.Empty(t, sink.removed)
}

func TestTotalPrice(t *testing.T) {
	b, _ := newTestBasket()

	// produto vazio vale 1.0
	assert.Equal(t, 1.0, b.TotalPrice())
	assert.Equal(t, "1.00", b.FormattedTotalPrice())

	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	b.Add("event2", "Barcelona vs Real Madrid", odds.Outcome{Name: "Barcelona", Price: 1.5}, "h2h", "Bookmaker 1")

	assert.InDelta(t, 2.7, b.TotalPrice(), 1e-9)
	assert.Equal(t, "2.70", b.FormattedTotalPrice())
}

func TestClear(t *testing.T) {
	b, _ := newTestBasket()

	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")

	var notified int
	b.Subscribe(func() { notified++ })

	b.Clear()
	assert.Empty(t, b.Items())
	assert.Equal(t, 1.0, b.TotalPrice())
	assert.Equal(t, 1, notified)

	// clear de basket vazio também notifica
	b.Clear()
	assert.Equal(t, 2, notified)
}

func TestContains(t *testing.T) {
	b, _ := newTestBasket()

	assert.False(t, b.Contains("event1"))
	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	assert.True(t, b.Contains("event1"))
	b.Remove("event1")
	assert.False(t, b.Contains("event1"))
}

func TestListenerOrderAndUnsubscribe(t *testing.T) {
	b, _ := newTestBasket()

	var order []string
	b.Subscribe(func() { order = append(order, "first") })
	unsub := b.Subscribe(func() { order = append(order, "second") })

	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")
	require.Equal(t, []string{"first", "second"}, order)

	unsub()
	order = nil
	b.Clear()
	assert.Equal(t, []string{"first"}, order)
}

func TestListenerAddedDuringNotification(t *testing.T) {
	b, _ := newTestBasket()

	var lateCalls int
	var registerOnce sync.Once
	b.Subscribe(func() {
		// inscreve um segundo listener no meio da entrega
		registerOnce.Do(func() {
			b.Subscribe(func() { lateCalls++ })
		})
	})

	b.Add("event1", "Arsenal vs Chelsea", odds.Outcome{Name: "Arsenal", Price: 1.8}, "h2h", "Bookmaker 1")

	// a notificação em andamento não chega ao listener recém-inscrito
	assert.Zero(t, lateCalls)

	// a partir da próxima mutação ele recebe normalmente
	b.Clear()
	assert.Equal(t, 1, lateCalls)
}

func TestBetItemEqualityAndFormat(t *testing.T) {
	a := BetItem{EventID: "event1", EventName: "Arsenal vs Chelsea", Outcome: odds.Outcome{Name: "Arsenal", Price: 1.8}, MarketKey: "h2h", BookmakerTitle: "Bookmaker 1"}
	same := BetItem{EventID: "event1", EventName: "Arsenal vs Chelsea", Outcome: odds.Outcome{Name: "Arsenal", Price: 1.8}, MarketKey: "h2h", BookmakerTitle: "Bookmaker 1"}
	other := BetItem{EventID: "event1", EventName: "Arsenal vs Chelsea", Outcome: odds.Outcome{Name: "Chelsea", Price: 2.1}, MarketKey: "h2h", BookmakerTitle: "Bookmaker 1"}

	assert.Equal(t, a, same)
	assert.NotEqual(t, a, other)
	assert.Equal(t, "1.80", a.FormattedPrice())
}
