package plan

import "errors"

var (
	ErrInvalidCatalog    = errors.New("invalid plan catalog configuration")
	ErrFreeTierRequired  = errors.New("plan catalog must define the free tier")
	ErrFailedToLoadPlans = errors.New("failed to load plan catalog")
)
