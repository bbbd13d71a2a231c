package model

// Proposal statuses. Unlike missions, proposals have a flat three-state
// lifecycle and never leave ACCEPTED or REJECTED once decided.
const (
	ProposalPending  = "PENDING"
	ProposalAccepted = "ACCEPTED"
	ProposalRejected = "REJECTED"
)

// Proposal is a mover's bid on a mission.
type Proposal struct {
	ID            string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MissionID     string  `gorm:"column:mission_id;type:uuid" json:"mission_id"`
	UserID        string  `gorm:"column:user_id;type:uuid" json:"user_id"`
	Message       string  `gorm:"column:message" json:"message"`
	ProposedPrice float64 `gorm:"column:proposed_price" json:"proposed_price"`
	Status        string  `gorm:"column:status" json:"status"`

	Mission *Mission `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamps
}

// TableName implements the GORM table naming convention.
func (Proposal) TableName() string { return "proposals" }
