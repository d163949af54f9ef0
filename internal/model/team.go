package model

// Team tags which side a combat entity fights for. Hitboxes never damage
// their own team unless friendly fire is enabled.
type Team string

const (
	TeamEnemy     Team = "enemy"
	TeamPlayer    Team = "player"
	TeamLivestock Team = "livestock"
)

// String returns the team name.
func (t Team) String() string {
	return string(t)
}
