package model

type User struct {
	UserID    int64     `gorm:"primaryKey" json:"user_id"`
	UserName  string    `gorm:"not null;type:varchar(50)" json:"user_name"`
	UserEmail string    `gorm:"unique;not null;type:varchar(100)" json:"user_email"`
	UserPhone string    `gorm:"type:varchar(50)" json:"user_phone"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"` // 一對多，級聯刪除
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders"`
	BaseModel
}
