package models

// DoctorProfile holds the doctor-specific attributes for a user with the
// doctor role. Weekly availability lives in WeeklySlot rows owned by the
// profile.
type DoctorProfile struct {
	BaseModel
	UserID          string   `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization  string   `gorm:"size:100" json:"specialization"`
	Qualifications  []string `gorm:"serializer:json" json:"qualifications"`
	ExperienceYears int      `json:"experienceYears"`
	Phone           string   `gorm:"size:30" json:"phone"`
	Gender          string   `gorm:"size:20" json:"gender"`
	Bio             string   `gorm:"type:text" json:"bio"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	WeeklySlots []WeeklySlot `gorm:"foreignKey:DoctorProfileID" json:"weeklyRecurringSlots"`
}

// WeeklySlot is a recurring availability template: it repeats every week on
// the given day until deleted. Times are "HH:MM" strings, no date component.
type WeeklySlot struct {
	BaseModel
	DoctorProfileID string `gorm:"size:36;index;not null" json:"-"`
	Day             string `gorm:"size:10;not null" json:"day"`
	StartTime       string `gorm:"size:5;not null" json:"startTime"`
	EndTime         string `gorm:"size:5;not null" json:"endTime"`
}
