package usage

import "time"

const (
	ActorGuest = "guest"
	ActorUser  = "user"
)

// Counter is one durable usage row per actor. Used only ever grows; there
// is no reset path exposed to callers.
type Counter struct {
	ActorKind string `gorm:"primaryKey;column:actor_kind"`
	ActorID   string `gorm:"primaryKey;column:actor_id"`
	Used      int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (Counter) TableName() string {
	return "usage_counters"
}
