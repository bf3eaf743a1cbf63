// README: Toll booth store backed by PostgreSQL.
package toll

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// List returns stored booths in the order they were first added.
func (s *Store) List(ctx context.Context) ([]Booth, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, lat, lng
		FROM toll_booths
		ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var booths []Booth
	for rows.Next() {
		var b Booth
		if err := rows.Scan(&b.Name, &b.Location.Lat, &b.Location.Lng); err != nil {
			return nil, err
		}
		booths = append(booths, b)
	}
	return booths, rows.Err()
}

// Upsert stores b, moving an existing booth of the same name.
func (s *Store) Upsert(ctx context.Context, b Booth) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO toll_booths (name, lat, lng, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE
		SET lat = EXCLUDED.lat,
		    lng = EXCLUDED.lng`,
		b.Name, b.Location.Lat, b.Location.Lng,
	)
	return err
}
