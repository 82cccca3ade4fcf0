package models

type WebSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

type ResearchSource struct {
	Web *WebSource `json:"web,omitempty"`
}

type SavedResearch struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	Query     string           `gorm:"not null" json:"query"`
	Text      string           `gorm:"not null" json:"text"`
	Sources   []ResearchSource `gorm:"serializer:json" json:"sources"`
	Timestamp int64            `gorm:"not null;index" json:"timestamp"`
}

func (SavedResearch) TableName() string {
	return "saved_research"
}
