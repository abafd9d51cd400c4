package models

import "time"

// Gender options offered by the profile form
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the accepted gender values
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Profile holds the user's details
type Profile struct {
	Name        string     `json:"name"`
	Age         int        `json:"age"`
	Occupation  string     `json:"occupation"`
	Gender      string     `json:"gender"`
	Frequency   string     `json:"frequency"` // how often the user exercises, free text
	Description string     `json:"description"`
	PhotoPath   string     `json:"photoPath,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}
