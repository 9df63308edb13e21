package repo

import (
	"context"
	"database/sql"

	"github.com/saidozsoy1/sports-betting-app/internal/odds"
)

// PostgresRepo persiste o snapshot de odds vindo do aggregator.
// Mantém a odd h2h corrente por evento (odds_current) e o histórico de
// cada fetch (odds_history).
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// SaveSnapshot grava em lote a primeira odd h2h utilizável de cada evento.
// Usa ON CONFLICT para garantir uma linha corrente por event_id.
func (r *PostgresRepo) SaveSnapshot(ctx context.Context, evs []odds.Event) error {
	const upsert = `
		INSERT INTO odds_current
		  (event_id, sport_key, sport_title, commence_time, home_team, away_team,
		   bookmaker, home_odd, draw_odd, away_odd, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
		ON CONFLICT (event_id) DO UPDATE SET
		  sport_key     = EXCLUDED.sport_key,
		  sport_title   = EXCLUDED.sport_title,
		  commence_time = EXCLUDED.commence_time,
		  home_team     = EXCLUDED.home_team,
		  away_team     = EXCLUDED.away_team,
		  bookmaker     = EXCLUDED.bookmaker,
		  home_odd      = EXCLUDED.home_odd,
		  draw_odd      = EXCLUDED.draw_odd,
		  away_odd      = EXCLUDED.away_odd,
		  updated_at    = now()
	`
	const history = `
		INSERT INTO odds_history
		  (event_id, bookmaker, home_odd, draw_odd, away_odd, fetched_at)
		VALUES
		  ($1,$2,$3,$4,$5,now())
	`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ev := range evs {
		bk, mk, ok := ev.BestH2H()
		if !ok {
			continue // o filtro do aggregator já deveria ter removido
		}

		var home, away float64
		var draw sql.NullFloat64
		for _, out := range mk.Outcomes {
			switch out.Name {
			case ev.HomeTeam:
				home = out.Price
			case ev.AwayTeam:
				away = out.Price
			case "Draw":
				draw = sql.NullFloat64{Float64: out.Price, Valid: true}
			}
		}

		if _, err := tx.ExecContext(ctx, upsert,
			ev.ID, ev.SportKey, ev.SportTitle, ev.CommenceTime, ev.HomeTeam, ev.AwayTeam,
			bk.Title, home, draw, away,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, history,
			ev.ID, bk.Title, home, draw, away,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
