package plan

import (
	"context"

	"verdant/internal/shared/cursor"
)

// Repository defines the interface for plan persistence. Every method scopes
// by owner ID so ownership is re-checked on each call; nothing is cached from
// earlier requests.
type Repository interface {
	// Create persists a new plan and assigns its database identity.
	Create(ctx context.Context, p *Plan) error

	// GetBySID retrieves a plan by its public ID, scoped to the owner.
	// Returns a not found error when the plan is absent or owned by someone else.
	GetBySID(ctx context.Context, ownerID uint, sid string) (*Plan, error)

	// Update persists the mutable plan fields with an owner-scoped conditional
	// update. Zero affected rows surfaces as a conflict.
	Update(ctx context.Context, p *Plan) error

	// Delete removes a plan. Grid cells and placements go with it.
	Delete(ctx context.Context, ownerID uint, id uint) error

	// List returns one keyset page of the owner's plans ordered by
	// (updated_at, id) descending. A nil cursor starts from the newest plan;
	// a nil next cursor means the sequence is exhausted.
	List(ctx context.Context, ownerID uint, filter ListFilter, cur *cursor.PlanCursor, limit int) ([]*Plan, *cursor.PlanCursor, error)
}

// ListFilter defines the optional filters for listing plans.
type ListFilter struct {
	// Name restricts the listing to plans whose name contains the term.
	// Pattern metacharacters in the term are matched literally.
	Name string
}
