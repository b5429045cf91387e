package dbmodels

import "time"

// SchemaVersion примененная ревизия схемы хранилища
type SchemaVersion struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	AppliedAt time.Time
}
