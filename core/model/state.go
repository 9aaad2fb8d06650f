// Package model provides the shared building blocks for bayesgo
// components: the runtime fitted-state tracker used by transformers,
// and the interfaces fitted classifiers satisfy.
//
// The classifiers themselves do not use StateManager. Their lifecycle
// is enforced by the type system: fitting an estimator returns a
// distinct fitted type, so predicting with an unfitted model does not
// compile. StateManager covers the components whose lifecycle stays a
// runtime property, such as vectorizers and label encoders.
package model

import "sync"

// StateManager tracks the fitted state of a component in a
// thread-safe manner. Components hold one by composition and consult
// it at their operation boundaries.
type StateManager struct {
	mu        sync.RWMutex
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the component has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the component as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the component to the unfitted state and clears the
// recorded dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the output width and the number of samples
// seen during fitting.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// GetDimensions returns the dimensions recorded during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}
