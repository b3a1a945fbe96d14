package domain

// User represents a registered account.
// Passwords are stored as argon2id hashes; the plaintext never touches disk.
type User struct {
	Entity
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
