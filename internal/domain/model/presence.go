package model

// PresenceUpdate is broadcast to every live connection when an identity
// comes online or goes offline.
type PresenceUpdate struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}
