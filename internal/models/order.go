package models

import "time"

// OrderStatus is the lifecycle state of an Order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderFailed    OrderStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderFailed
}

// Order is the durable record of one checkout attempt and its outcome.
// Orders are never deleted.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CourseID      string      `json:"course_id" gorm:"type:varchar(64);index"`
	CourseName    string      `json:"course_name" gorm:"type:varchar(255)"` // Snapshot at checkout time
	CustomerName  string      `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail string      `json:"customer_email" gorm:"type:varchar(255);index"`
	CustomerPhone string      `json:"customer_phone" gorm:"type:varchar(32)"`
	Amount        int64       `json:"amount"` // Minor units (cents)
	Currency      string      `json:"currency" gorm:"type:varchar(3)"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(16);index"`
	// PaymentIntentID is the gateway reference; once set it never changes.
	PaymentIntentID *string    `json:"payment_intent_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	NotifiedAt      *time.Time `json:"notified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
