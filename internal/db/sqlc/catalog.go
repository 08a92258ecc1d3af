package db

import (
	"context"
)

func (q *Queries) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name, slug, country FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		if err = rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Country); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (q *Queries) GetBrandByID(ctx context.Context, id int64) (Brand, error) {
	var b Brand
	err := q.db.QueryRow(ctx, `SELECT id, name, slug, country FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Slug, &b.Country)
	return b, err
}

func (q *Queries) ListCarModelsByBrand(ctx context.Context, brandID int64) ([]CarModel, error) {
	rows, err := q.db.Query(ctx, `SELECT id, brand_id, name, slug, body_type
		FROM car_models WHERE brand_id = $1 ORDER BY name`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []CarModel
	for rows.Next() {
		var m CarModel
		if err = rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.Slug, &m.BodyType); err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (q *Queries) GetCarModelByID(ctx context.Context, id int64) (CarModel, error) {
	var m CarModel
	err := q.db.QueryRow(ctx, `SELECT id, brand_id, name, slug, body_type FROM car_models WHERE id = $1`, id).
		Scan(&m.ID, &m.BrandID, &m.Name, &m.Slug, &m.BodyType)
	return m, err
}

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err = rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
