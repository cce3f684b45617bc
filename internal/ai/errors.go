package ai

import "github.com/aibrandtrack/brandtrack/internal/ai/aierrors"

// Sentinel errors live in the leaf package aierrors so provider
// subpackages can wrap them without importing the factory package.
var (
	ErrProviderUnavailable = aierrors.ErrProviderUnavailable
	ErrInferenceTimeout    = aierrors.ErrInferenceTimeout
	ErrInvalidResponse     = aierrors.ErrInvalidResponse
)
