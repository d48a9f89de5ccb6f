package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	State         string         `gorm:"type:varchar(32);not null;default:idle"`
	Context       datatypes.JSON `gorm:"type:jsonb"`
	MissingFields datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
