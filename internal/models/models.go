package models

// Role is the access level carried by a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Book represents a catalog entry.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	Published     string `json:"published"`
	CoverImageURL string `json:"coverImageUrl"`
	Description   string `json:"description"`
}

// User represents a registered account. The backend stores user ids as
// string-encoded integers and passwords in plaintext.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Session is the in-memory representation of the authenticated identity.
type Session struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name,omitempty"`
}

// SessionFor derives a Session from a user record.
func SessionFor(u User) Session {
	return Session{Email: u.Email, Role: u.Role, Name: u.Name}
}
