// models/match.go
package models

import "time"

type MatchType string

const (
	MatchSingles MatchType = "SINGLES"
	MatchDoubles MatchType = "DOUBLES"
)

// TeamSize returns the number of players per team for this match type.
func (t MatchType) TeamSize() int {
	if t == MatchSingles {
		return 1
	}
	return 2
}

func (t MatchType) Valid() bool {
	return t == MatchSingles || t == MatchDoubles
}

type Match struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"`
	Group     *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	MatchType MatchType `json:"match_type" gorm:"size:10"`

	TeamOne []User `json:"team_one,omitempty" gorm:"many2many:match_team_one_players"`
	TeamTwo []User `json:"team_two,omitempty" gorm:"many2many:match_team_two_players"`

	// Score is "<teamOneScore>-<teamTwoScore>", e.g. "11-9". Empty until
	// scores are reported.
	Score     string    `json:"score"`
	MatchDate time.Time `json:"match_date" gorm:"not null"`
}

func (Match) TableName() string {
	return "matches"
}
