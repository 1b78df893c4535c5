package domain

// Skill is one personal development goal owned by a single user.
type Skill struct {
	ID          int64 // 0 until stored
	Owner       string
	Description string
	TargetDate  Date
	Done        bool
}

// IsNew reports whether the record has not been stored yet.
func (s Skill) IsNew() bool { return s.ID == 0 }
