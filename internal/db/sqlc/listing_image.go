package db

import (
	"context"
)

type AddListingImageParams struct {
	ListingID int64
	URL       string
	IsPrimary bool
}

func (q *Queries) AddListingImage(ctx context.Context, arg AddListingImageParams) (ListingImage, error) {
	var img ListingImage
	err := q.db.QueryRow(ctx, `INSERT INTO listing_images (listing_id, url, is_primary)
		VALUES ($1, $2, $3)
		RETURNING id, listing_id, url, is_primary, created_at`,
		arg.ListingID, arg.URL, arg.IsPrimary).
		Scan(&img.ID, &img.ListingID, &img.URL, &img.IsPrimary, &img.CreatedAt)
	return img, err
}

func (q *Queries) CountListingImages(ctx context.Context, listingID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM listing_images WHERE listing_id = $1`, listingID).Scan(&count)
	return count, err
}

func (q *Queries) ListListingImages(ctx context.Context, listingID int64) ([]ListingImage, error) {
	rows, err := q.db.Query(ctx, `SELECT id, listing_id, url, is_primary, created_at
		FROM listing_images WHERE listing_id = $1 ORDER BY is_primary DESC, id ASC`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []ListingImage
	for rows.Next() {
		var img ListingImage
		if err = rows.Scan(&img.ID, &img.ListingID, &img.URL, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

type SetListingPrimaryImageParams struct {
	ListingID int64
	ImageID   int64
}

func (q *Queries) SetListingPrimaryImage(ctx context.Context, arg SetListingPrimaryImageParams) error {
	_, err := q.db.Exec(ctx, `UPDATE listing_images SET is_primary = (id = $2)
		WHERE listing_id = $1`, arg.ListingID, arg.ImageID)
	return err
}
