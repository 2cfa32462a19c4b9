package storage

import (
	"gorm.io/datatypes"
)

// Collection names used as the partition key.
const (
	CollectionUsers    = "users"
	CollectionQuotes   = "quotes"
	CollectionComments = "comments"
)

// record is one stored entity. Seq preserves insertion order across restarts.
type record struct {
	Seq        uint64         `gorm:"column:seq;primaryKey;autoIncrement"`
	Collection string         `gorm:"column:collection;size:32;not null;uniqueIndex:idx_records_collection_id,priority:1"`
	RecordID   string         `gorm:"column:record_id;size:64;not null;uniqueIndex:idx_records_collection_id,priority:2"`
	Payload    datatypes.JSON `gorm:"column:payload;not null"`
}

func (record) TableName() string {
	return "records"
}
