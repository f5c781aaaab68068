package domain

import (
	"time"

	"gorm.io/gorm"
)

// Subject is an exam subject; every subject has its own village chain.
type Subject string

const (
	SubjectEnglish Subject = "english"
	SubjectReading Subject = "reading"
	SubjectScience Subject = "science"
	SubjectMath    Subject = "math"
)

// AllSubjects lists every valid subject in presentation order.
var AllSubjects = []Subject{SubjectEnglish, SubjectReading, SubjectScience, SubjectMath}

// IsValidSubject reports whether s names a known subject
func IsValidSubject(s Subject) bool {
	for _, subject := range AllSubjects {
		if subject == s {
			return true
		}
	}
	return false
}

// User represents a student in the system
type User struct {
	ID           int64          `json:"user_id" gorm:"primaryKey;column:id;autoIncrement"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null;type:varchar(64)"`
	Password     string         `json:"-" gorm:"not null;type:varchar(128)"`
	IsAdmin      bool           `json:"is_admin" gorm:"not null;default:false"`
	HasOnboard   bool           `json:"has_onboard" gorm:"not null;default:false"`
	CurrentScore *int           `json:"current_score,omitempty"`
	TargetScore  *int           `json:"target_score,omitempty"`
	ExamDate     *time.Time     `json:"exam_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"not null"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	WithTransaction(tx *gorm.DB) UserRepository
}

// OnboardInput carries the profile data collected during onboarding
type OnboardInput struct {
	Subjects     []Subject
	CurrentScore *int
	TargetScore  *int
	ExamDate     *time.Time
}

// UserUseCase defines the interface for user business logic
type UserUseCase interface {
	Register(username, password string) (*User, error)
	Authenticate(username, password string) (string, error)
	GetUserInfo(userID int64) (*User, error)
	Onboard(userID int64, input OnboardInput) error
}
