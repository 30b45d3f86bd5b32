package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile is one user's profile row.
type Profile struct {
	ID                     uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Name                   string           `gorm:"not null"`
	Age                    *int
	Role                   string
	StartingBalance        decimal.Decimal  `gorm:"type:numeric;not null"`
	Currency               string           `gorm:"size:3"`
	MonthlyIncomeEstimate  *decimal.Decimal `gorm:"type:numeric"`
	MonthlyExpenseEstimate *decimal.Decimal `gorm:"type:numeric"`
	MonthlyBudgetTarget    *decimal.Decimal `gorm:"type:numeric"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Transaction is a synced transaction row.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	Date          time.Time       `gorm:"not null;index"`
	Category      string          `gorm:"not null"`
	Notes         string
	PaymentMethod string
	Tags          []string `gorm:"serializer:json;type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Goal is a synced goal row.
type Goal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"not null"`
	Category      string          `gorm:"not null"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric;not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric;not null"`
	StartDate     time.Time
	EndDate       *time.Time
	Notes         string
	Color         string
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// BeforeCreate fills in ids the client did not send. Postgres could use
// gen_random_uuid() but sqlite cannot.
func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (g *Goal) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
