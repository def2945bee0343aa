package recipe

import "context"

// Repository port for saved recipes
type Repository interface {
	Save(ctx context.Context, r *SavedRecipe) error
	ListByUser(ctx context.Context, userID string) ([]*SavedRecipe, error)
}
