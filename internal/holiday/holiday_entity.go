package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Date        time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex:uq_holidays_date"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Holiday) TableName() string {
	return "holidays"
}
