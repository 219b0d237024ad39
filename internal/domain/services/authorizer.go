package services

import "context"

// ResourceAuthorizer proves chain-of-custody from a resource up to its owning
// user before any mutation touches ordered state. Each check walks the fixed
// parent chain for its resource kind; a broken chain surfaces as not-found,
// an owner mismatch as forbidden. All checks are read-only.
type ResourceAuthorizer interface {
	// CanAccessProject checks the user owns the project
	CanAccessProject(ctx context.Context, userID, projectID string) error

	// CanAccessBoard checks via board -> project -> owner
	CanAccessBoard(ctx context.Context, userID, boardID string) error

	// CanAccessColumn checks via column -> board -> project -> owner
	CanAccessColumn(ctx context.Context, userID, columnID string) error

	// CanAccessCard checks via card -> column -> board -> project -> owner
	CanAccessCard(ctx context.Context, userID, cardID string) error

	// CanAccessTag checks via tag -> project -> owner
	CanAccessTag(ctx context.Context, userID, tagID string) error
}
