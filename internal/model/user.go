package model

// User roles. Operators moderate missions and review proposals across the
// whole marketplace; movers create missions and bid on published ones.
const (
	RoleOperator = "operator"
	RoleMover    = "mover"
)

// User is a registered account.
type User struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"column:name" json:"name"`
	Email    string `gorm:"column:email;uniqueIndex" json:"email"`
	Password string `gorm:"column:password" json:"-"`
	Role     string `gorm:"column:role" json:"role"`
	Timestamps
}

// TableName implements the GORM table naming convention.
func (User) TableName() string { return "users" }

// IsOperator reports whether the account carries the operator role.
func (u *User) IsOperator() bool { return u.Role == RoleOperator }
