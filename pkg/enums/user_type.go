package enums

// UserType distinguishes regular users from trainers who publish workouts.
type UserType string

const (
	UserTypeStandard UserType = "standard"
	UserTypeTrainer  UserType = "trainer"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeStandard, UserTypeTrainer:
		return true
	}
	return false
}

func (t UserType) String() string {
	return string(t)
}
