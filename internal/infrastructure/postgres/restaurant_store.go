package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/breynerciro/restaurante-app/internal/domain/restaurant"
	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

const restaurantColumns = `id, name, description, address, city, photo_url, created_at`

// RestaurantStore is the Postgres-backed restaurant catalog.
type RestaurantStore struct {
	pool *pgxpool.Pool
}

func scanRestaurant(row interface{ Scan(dest ...any) error }) (restaurant.Restaurant, error) {
	var r restaurant.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Address, &r.City, &r.PhotoURL, &r.CreatedAt)
	return r, err
}

func (s *RestaurantStore) Create(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO restaurants (name, description, address, city, photo_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+restaurantColumns,
		r.Name, r.Description, r.Address, r.City, r.PhotoURL, r.CreatedAt,
	)
	created, err := scanRestaurant(row)
	if err != nil {
		return restaurant.Restaurant{}, storeErr("create restaurant", err)
	}
	return created, nil
}

func (s *RestaurantStore) Get(ctx context.Context, id int64) (restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id=$1`, id)
	r, err := scanRestaurant(row)
	if err != nil {
		if isNoRows(err) {
			return restaurant.Restaurant{}, internaltypes.ErrRestaurantNotFound
		}
		return restaurant.Restaurant{}, storeErr("get restaurant", err)
	}
	return r, nil
}

func (s *RestaurantStore) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, storeErr("list restaurants", err)
	}
	defer rows.Close()

	var out []restaurant.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, storeErr("list restaurants", err)
		}
		out = append(out, r)
	}
	return out, storeErr("list restaurants", rows.Err())
}

func (s *RestaurantStore) Update(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE restaurants
		SET name=$2, description=$3, address=$4, city=$5, photo_url=$6
		WHERE id=$1
		RETURNING `+restaurantColumns,
		r.ID, r.Name, r.Description, r.Address, r.City, r.PhotoURL,
	)
	updated, err := scanRestaurant(row)
	if err != nil {
		if isNoRows(err) {
			return restaurant.Restaurant{}, internaltypes.ErrRestaurantNotFound
		}
		return restaurant.Restaurant{}, storeErr("update restaurant", err)
	}
	return updated, nil
}

// DeleteCascade removes the restaurant's reservations and then the
// restaurant itself in one transaction.
func (s *RestaurantStore) DeleteCascade(ctx context.Context, id int64) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, storeErr("delete restaurant", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM reservations WHERE restaurant_id=$1`, id)
	if err != nil {
		return 0, storeErr("delete restaurant reservations", err)
	}
	removed := int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `DELETE FROM restaurants WHERE id=$1`, id)
	if err != nil {
		return 0, storeErr("delete restaurant", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, internaltypes.ErrRestaurantNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storeErr("delete restaurant", err)
	}
	return removed, nil
}

func (s *RestaurantStore) Filter(ctx context.Context, f restaurant.Filter) ([]restaurant.Restaurant, error) {
	var (
		conds []string
		args  []any
	)
	if f.NamePrefix != "" {
		args = append(args, f.NamePrefix+"%")
		conds = append(conds, `name LIKE $`+strconv.Itoa(len(args)))
	}
	if f.CityContains != "" {
		args = append(args, "%"+f.CityContains+"%")
		conds = append(conds, `city ILIKE $`+strconv.Itoa(len(args)))
	}
	q := `SELECT ` + restaurantColumns + ` FROM restaurants`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storeErr("filter restaurants", err)
	}
	defer rows.Close()

	var out []restaurant.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, storeErr("filter restaurants", err)
		}
		out = append(out, r)
	}
	return out, storeErr("filter restaurants", rows.Err())
}
