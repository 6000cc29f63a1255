package models

import (
	"time"

	"github.com/juliabase/juliabase/internal/domain/users"
)

// UserModel is the GORM database model for user accounts (infrastructure concern)
type UserModel struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	LoginName      string    `gorm:"not null;uniqueIndex;type:varchar(150)"`
	DisplayName    string    `gorm:"type:varchar(150)"`
	Email          string    `gorm:"type:varchar(254)"`
	HashedPassword string    `gorm:"not null;type:varchar(128)"`
	IsActive       bool      `gorm:"not null;default:true"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	DateJoined     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:             m.ID,
		LoginName:      m.LoginName,
		DisplayName:    m.DisplayName,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		IsActive:       m.IsActive,
		IsAdmin:        m.IsAdmin,
		DateJoined:     m.DateJoined,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.LoginName = u.LoginName
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.HashedPassword = u.HashedPassword
	m.IsActive = u.IsActive
	m.IsAdmin = u.IsAdmin
	m.DateJoined = u.DateJoined
}

// UserDetailsModel stores the per-user working state row (one per user,
// created lazily).
type UserDetailsModel struct {
	UserID    string `gorm:"primaryKey;type:uuid"`
	FeedToken string `gorm:"not null;index;type:varchar(64)"`
}

// TableName specifies the table name for GORM
func (UserDetailsModel) TableName() string {
	return "user_details"
}

// MySampleModel is the join row between a user and a sample in their
// "My Samples" working set.
type MySampleModel struct {
	UserID   string `gorm:"primaryKey;type:uuid"`
	SampleID string `gorm:"primaryKey;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (MySampleModel) TableName() string {
	return "my_samples"
}

// PermissionModel stores one permission grant: user may <permission> on
// processes of <process_kind>.
type PermissionModel struct {
	UserID      string `gorm:"primaryKey;type:uuid"`
	ProcessKind string `gorm:"primaryKey;type:varchar(50)"`
	Permission  string `gorm:"primaryKey;type:varchar(10)"`
}

// TableName specifies the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}
