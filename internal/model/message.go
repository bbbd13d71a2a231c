package model

// Message is a discussion entry on a mission thread.
type Message struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MissionID string `gorm:"column:mission_id;type:uuid" json:"mission_id"`
	UserID    string `gorm:"column:user_id;type:uuid" json:"user_id"`
	Content   string `gorm:"column:content" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamps
}

// TableName implements the GORM table naming convention.
func (Message) TableName() string { return "messages" }
