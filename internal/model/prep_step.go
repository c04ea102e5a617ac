package model

// PrepStep is a short actionable reminder attached to a task, scheduled at
// a fixed offset before its due date. Steps have no identity of their own in
// the API; they are exposed only as an ordered list inside their task and
// are replaced wholesale on update.
type PrepStep struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	TaskID        uint   `gorm:"index" json:"-"`
	Title         string `json:"title"`
	OffsetMinutes int    `json:"offset_minutes"`
	Completed     bool   `gorm:"default:false" json:"completed"`
}
