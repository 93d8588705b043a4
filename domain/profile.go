package domain

type UserID string

// Profile is owned by the account system; the portal core only resolves it
// as a join target and never mutates it.
type Profile struct {
	ID         UserID `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
