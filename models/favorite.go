package models

import "time"

// Favorite is one favorite-membership record: its existence under
// users/{uid}/favorites marks the provider as favorited. The document id
// equals the provider id, so the record body only carries the creation
// timestamp written by the backend.
type Favorite struct {
	ProviderID string    `json:"providerId"`
	CreatedAt  time.Time `json:"createdAt"`
}
