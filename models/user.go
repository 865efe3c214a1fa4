package models

// Roles.
const (
	RoleTourist  = "tourist"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User is a platform account. Only the demo accounts exist for now.
type User struct {
	UserID       string `json:"id" bson:"userid"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
}

// SessionUser is what a token carries.
type SessionUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Profile is the body of GET /api/profile.
type Profile struct {
	User        SessionUser  `json:"user"`
	Routes      []SavedRoute `json:"routes"`
	JoinedPlans []JoinedPlan `json:"joinedPlans"`
}

// Companion is a fellow traveller returned by the companion search.
type Companion struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
	Regions   []string `json:"regions"`
}

type CompanionSearch struct {
	Interests []string `json:"interests,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Regions   []string `json:"regions,omitempty"`
}

type Partner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Discount string `json:"discount"`
}
