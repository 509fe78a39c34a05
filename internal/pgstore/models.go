package pgstore

import (
	"time"

	"gulfjobs-web/internal/domain"
)

// jobRow mirrors the hosted jobs relation. The id is opaque: bigint, uuid
// and text keys all scan into the string. Requirements and benefits are
// jsonb documents of the form {"items": [...]}.
type jobRow struct {
	ID           string          `gorm:"primaryKey"`
	Title        string          `gorm:"not null"`
	Company      string
	Country      string          `gorm:"index"`
	City         *string
	Salary       string
	Currency     string
	Positions    int
	Category     string          `gorm:"index"`
	Experience   string
	Type         string
	Requirements domain.ItemList `gorm:"type:jsonb;serializer:json"`
	Benefits     domain.ItemList `gorm:"type:jsonb;serializer:json"`
	Deadline     *time.Time      `gorm:"type:date"`
	Description  string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"index"`
}

// applicationRow leaves the id to the database and reads it back.
type applicationRow struct {
	ID        string `gorm:"primaryKey;type:text;default:gen_random_uuid()::text"`
	JobID     string `gorm:"type:text;index;not null"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}
