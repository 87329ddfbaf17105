package entity

import (
	"time"

	"github.com/google/uuid"
)

type Dataset struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(100);not null;index" json:"name"`
	Owner       string       `gorm:"type:varchar(50);not null;index" json:"owner"`
	Description *string      `gorm:"type:text" json:"description"`
	Tags        []DatasetTag `gorm:"foreignKey:DatasetID" json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	IsDeleted   bool         `gorm:"not null;default:false;index" json:"is_deleted"`
}

func (Dataset) TableName() string { return "datasets" }

// TagValues flattens the ordered tag rows back into plain strings.
func (d *Dataset) TagValues() []string {
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, t.Tag)
	}
	return tags
}

// DatasetTag holds one tag occurrence of a dataset. Position preserves the
// order tags were submitted in; the same tag may appear on multiple rows.
type DatasetTag struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_dataset_tags_tag,priority:2" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	Tag       string    `gorm:"type:varchar(100);not null;index:idx_dataset_tags_tag,priority:1" json:"tag"`
}

func (DatasetTag) TableName() string { return "dataset_tags" }
