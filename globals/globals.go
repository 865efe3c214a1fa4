package globals

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

// DemoToken is accepted in place of a JWT and maps to the demo tourist.
const DemoToken = "demo"

const DemoUserID = "u_demo"
