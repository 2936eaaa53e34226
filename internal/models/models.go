// Package models holds the persisted entities and the pure computations
// derived from them.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbaid4/testwecicada/internal/common"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleSupplier  Role = "supplier"
)

// ParseRole accepts an empty value as organizer.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleOrganizer:
		return RoleOrganizer, nil
	case RoleSupplier:
		return RoleSupplier, nil
	}
	return "", fmt.Errorf("%w: type must be one of: organizer, supplier", common.ErrBadRequest)
}

// User is a registered identity. PasswordHash is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null" json:"type"`
	CompanyName  string    `gorm:"size:190" json:"companyName"`
	EventType    string    `gorm:"size:120" json:"eventType"`
	ServiceType  string    `gorm:"size:120" json:"serviceType"`
	Address      string    `json:"address"`
	TaxID        string    `gorm:"size:64" json:"taxId"`
	Phone        string    `gorm:"size:64" json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Event is owned by CreatedBy and exclusively owns its Documents. Tasks is
// never loaded; it declares the tasks.event_id foreign key for migrations.
type Event struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Budget    float64    `json:"budget"`
	Type      string     `gorm:"size:120" json:"type"`
	SubType   string     `gorm:"size:120" json:"subType"`
	AddAdmin  string     `json:"addAdmin"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedBy uint       `gorm:"index;not null" json:"createdBy"`
	Documents []Document `gorm:"serializer:json;type:json" json:"documents"`
	Tasks     []Task     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Document describes one uploaded file. Filename is the storage handle.
type Document struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type Supplier struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"size:120" json:"type"`
	Rating      float64   `gorm:"not null" json:"rating"`
	Services    []string  `gorm:"serializer:json;type:json" json:"services"`
	CompanyName string    `gorm:"size:190" json:"companyName"`
	Address     string    `json:"address"`
	Phone       string    `gorm:"size:64" json:"phone"`
	Email       string    `gorm:"size:190" json:"email"`
	TaxID       string    `gorm:"size:64" json:"taxId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Message is immutable once stored.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"senderId"`
	ReceiverID uint      `gorm:"index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"timestamp"`
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&User{}, &Supplier{}, &Event{}, &Task{}, &Message{}}
}
