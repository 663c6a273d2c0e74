package model

import "strings"

type Seller struct {
	BaseModel
	FirstName  string `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName   string `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	MiddleName string `gorm:"type:varchar(100)" json:"middle_name"`
	Phone      string `gorm:"type:varchar(30)" json:"phone"`
}

// FullName renders "Last First Middle", skipping empty parts
func (s *Seller) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.LastName, s.FirstName, s.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
