package foodlog

import "context"

// Repository port (persistence interface for food logs)
type Repository interface {
	Save(ctx context.Context, l *FoodLog) error
	Get(ctx context.Context, userID string, id LogID) (*FoodLog, error)
	Latest(ctx context.Context, userID string, limit int) ([]*FoodLog, error)
	Summary(ctx context.Context, userID string, sinceDays int) (*Summary, error)
}

// MediaStore port (blob storage for meal photos)
type MediaStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error)
}
