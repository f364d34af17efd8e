package plan

import "errors"

var (
	ErrPlanNotFound = errors.New("plan: tier not found")

	// ErrLimitNotDeclared means a feature list carries no marker for a
	// resource. This is an explicit failure: the old behavior of silently
	// resolving such limits to zero locked paying users out of features.
	ErrLimitNotDeclared = errors.New("plan: limit not declared in feature list")

	ErrInvalidFeatureString = errors.New("plan: feature string has no parsable amount")
	ErrFailedToLoadCatalog  = errors.New("plan: failed to load catalog")
)
