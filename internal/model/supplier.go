package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address       string `gorm:"type:varchar(255)" json:"address"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
}
