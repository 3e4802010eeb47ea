package models

// Status is the reading state of a book.
type Status string

const (
	StatusToRead    Status = "to-read"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Book is a tracked reading item. ReadingSessions keep insertion order,
// which is not necessarily date order.
type Book struct {
	ID              int64            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title           string           `gorm:"size:200;not null" json:"title"`
	Author          string           `gorm:"size:100;not null" json:"author"`
	Category        string           `gorm:"size:50;not null;index" json:"category"`
	TotalPages      int              `gorm:"not null" json:"totalPages"`
	CurrentPage     int              `gorm:"not null;default:0" json:"currentPage"`
	Status          Status           `gorm:"type:text;not null;default:to-read;index" json:"status"`
	Priority        Priority         `gorm:"type:text;not null;default:medium" json:"priority"`
	StartDate       *string          `gorm:"size:10" json:"startDate"`
	ReadingSessions []ReadingSession `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"readingSessions"`
}

func (Book) TableName() string {
	return "books"
}

// Progress returns the read percentage in [0,100].
func (b Book) Progress() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	p := float64(b.CurrentPage) / float64(b.TotalPages) * 100
	if p > 100 {
		return 100
	}
	return p
}

// ReadingSession is one recorded act of reading. Date is a calendar date
// in YYYY-MM-DD form.
type ReadingSession struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	BookID  int64  `gorm:"not null;index" json:"-"`
	Date    string `gorm:"size:10;not null" json:"date"`
	Pages   int    `gorm:"not null" json:"pages"`
	Minutes int    `gorm:"not null" json:"minutes"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}
