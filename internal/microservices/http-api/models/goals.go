package models

// GoalTarget is a books/pages pair for one period.
type GoalTarget struct {
	Books int `gorm:"not null" json:"books"`
	Pages int `gorm:"not null" json:"pages"`
}

// Goals holds the monthly and weekly targets. Only one row exists.
type Goals struct {
	ID      int        `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Monthly GoalTarget `gorm:"embedded;embeddedPrefix:monthly_" json:"monthly"`
	Weekly  GoalTarget `gorm:"embedded;embeddedPrefix:weekly_" json:"weekly"`
}

func (Goals) TableName() string {
	return "goals"
}

// GoalsRowID is the primary key of the single goals row.
const GoalsRowID = 1

// DefaultGoals returns the targets used until the user sets their own.
func DefaultGoals() Goals {
	return Goals{
		ID:      GoalsRowID,
		Monthly: GoalTarget{Books: 3, Pages: 1000},
		Weekly:  GoalTarget{Books: 1, Pages: 250},
	}
}
