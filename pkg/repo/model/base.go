package model

import (
	"time"

	gorm "gorm.io/gorm"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(*gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.NewV4()
	}
	return nil
}
