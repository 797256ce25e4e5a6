package model

import (
	"time"
)

type SampleStatus string

const (
	SampleActive   SampleStatus = "active"
	SampleDepleted SampleStatus = "depleted"
	SampleArchived SampleStatus = "archived"
)

// Sample 一个批次的化学对照样品。
// Quantity 为半结构化字符串，既可能是单值（"12.86g"），
// 也可能是分容器明细（"1: 0.91g, 2: 3.91g"），解析逻辑见 core/quantity。
type Sample struct {
	BaseModel
	LotNumber    string       `gorm:"type:varchar(64);not null;uniqueIndex:idx_sample_lot" json:"lot_number"`
	ChemicalName string       `gorm:"type:varchar(255);not null;index:idx_sample_chem_name" json:"chemical_name"`
	CAS          *string      `gorm:"type:varchar(64);index:idx_sample_cas" json:"cas"`
	Quantity     string       `gorm:"type:varchar(255);not null" json:"quantity"`
	Unit         string       `gorm:"type:varchar(32);not null;default:'g'" json:"unit"`
	Status       SampleStatus `gorm:"type:varchar(32);not null;default:'active';index:idx_sample_status" json:"status"`
	Location     *string      `gorm:"type:varchar(128)" json:"location"`

	// 危险品属性，任一非空即触发 hazmat 分类
	UNNumber           *string `gorm:"type:varchar(16)" json:"un_number"`
	HazardClass        *string `gorm:"type:varchar(16)" json:"hazard_class"`
	PackingGroup       *string `gorm:"type:varchar(8)" json:"packing_group"`
	ProperShippingName *string `gorm:"type:varchar(255)" json:"proper_shipping_name"`

	ReceivedAt *time.Time `gorm:"type:timestamptz" json:"received_at"`
	ReceivedBy string     `gorm:"type:varchar(120)" json:"received_by"`
}

func (*Sample) TableName() string { return "sample" }

func (s *Sample) IsHazmat() bool {
	return (s.UNNumber != nil && *s.UNNumber != "") ||
		(s.HazardClass != nil && *s.HazardClass != "")
}
