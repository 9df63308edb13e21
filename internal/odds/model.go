package odds

import "time"

// Region é um segmento geográfico de mercado exposto pelo provedor
type Region string

const (
	RegionUS Region = "us"
	RegionUK Region = "uk"
	RegionEU Region = "eu"
	RegionAU Region = "au"
)

// Regions define a ordem fixa de busca e de merge dos resultados
var Regions = []Region{RegionUS, RegionUK, RegionEU, RegionAU}

// MarketH2H é o único mercado consumido pelo serviço (vitória/derrota/empate)
const MarketH2H = "h2h"

// Event representa uma partida futura retornada pelo provedor.
// A identidade de um evento é exclusivamente o ID.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker representa uma casa de apostas com seus mercados
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

// Market representa um mercado de aposta (ex: "h2h")
type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome representa um resultado apostável: nome do time (ou "Draw") e
// o multiplicador decimal aplicado à aposta
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Name monta o nome legível do evento ("<home> vs <away>")
func (e Event) Name() string {
	return e.HomeTeam + " vs " + e.AwayTeam
}

// FormattedCommenceTime formata o horário de início ("Jan 2, 3:04 PM" local).
// Se o valor não for ISO-8601 válido, retorna a string original.
func (e Event) FormattedCommenceTime() string {
	t, err := time.Parse(time.RFC3339, e.CommenceTime)
	if err != nil {
		return e.CommenceTime
	}
	return t.Local().Format("Jan 2, 3:04 PM")
}

// HasUsableOdds verifica se o evento tem odds utilizáveis: pelo menos uma
// casa com mercado h2h contendo outcome do mandante e do visitante, ambos
// com price > 0. Empate é opcional (esportes sem empate não o retornam).
func (e Event) HasUsableOdds() bool {
	_, _, ok := e.BestH2H()
	return ok
}

// BestH2H retorna o primeiro mercado h2h utilizável do evento junto com a
// casa que o oferece. ok == false quando o evento não tem odds utilizáveis.
func (e Event) BestH2H() (Bookmaker, Market, bool) {
	for _, bk := range e.Bookmakers {
		for _, mk := range bk.Markets {
			if mk.Key != MarketH2H {
				continue
			}
			var home, away bool
			for _, out := range mk.Outcomes {
				if out.Price <= 0 {
					continue
				}
				switch out.Name {
				case e.HomeTeam:
					home = true
				case e.AwayTeam:
					away = true
				}
			}
			if home && away {
				return bk, mk, true
			}
		}
	}
	return Bookmaker{}, Market{}, false
}
