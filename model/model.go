package model

import (
	"errors"
	"time"
)

type Sport string

const (
	Football   Sport = "FOOTBALL"
	Basketball Sport = "BASKETBALL"
	Cricket    Sport = "CRICKET"
)

func SportFromString(s string) (Sport, error) {
	switch s {
	case string(Football):
		return Football, nil
	case string(Basketball):
		return Basketball, nil
	case string(Cricket):
		return Cricket, nil
	}
	return "", errors.New("unsupported sport name")
}

func (s Sport) Valid() bool {
	_, err := SportFromString(string(s))
	return err == nil
}

type GameStatus string

const (
	Scheduled GameStatus = "SCHEDULED"
	Live      GameStatus = "LIVE"
	Finished  GameStatus = "FINISHED"
)

func GameStatusFromString(s string) (GameStatus, error) {
	switch s {
	case string(Scheduled):
		return Scheduled, nil
	case string(Live):
		return Live, nil
	case string(Finished):
		return Finished, nil
	}
	return "", errors.New("unsupported game status name")
}

func (s GameStatus) Valid() bool {
	_, err := GameStatusFromString(string(s))
	return err == nil
}

type BattingSide string

const (
	Team1Batting BattingSide = "TEAM1"
	Team2Batting BattingSide = "TEAM2"
)

func (b BattingSide) Valid() bool {
	return b == Team1Batting || b == Team2Batting
}

type Team struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"not null" json:"name"`
	LeaderID *uint    `json:"leader_id"`
	Leader   *Player  `gorm:"foreignKey:LeaderID" json:"-"`
	Players  []Player `gorm:"foreignKey:TeamID" json:"players,omitempty"`
}

type Player struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	TeamID      *uint     `json:"team_id"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

type Game struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Sport         Sport      `gorm:"not null" json:"sport"`
	Status        GameStatus `gorm:"not null;default:SCHEDULED" json:"status"`
	ScheduledTime time.Time  `gorm:"not null" json:"scheduled_time"`
	Team1ID       uint       `gorm:"not null" json:"team1_id"`
	Team2ID       uint       `gorm:"not null" json:"team2_id"`
	Team1Score    int        `gorm:"not null;default:0" json:"team1_score"`
	Team2Score    int        `gorm:"not null;default:0" json:"team2_score"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Detail *GameDetail  `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Stats  []PlayerStat `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Events []ScoreEvent `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

// GameDetail is the sport-tagged variant row attached to every Game. A
// single table holds the union of sport-specific fields, selected by
// Sport; the cricket columns stay at their zero values for football and
// basketball games.
type GameDetail struct {
	GameID           uint         `gorm:"primaryKey" json:"game_id"`
	Sport            Sport        `gorm:"not null" json:"sport"`
	Team1Deaths      int          `gorm:"not null;default:0" json:"team1_deaths"`
	Team2Deaths      int          `gorm:"not null;default:0" json:"team2_deaths"`
	BattingSide      *BattingSide `json:"batting_side,omitempty"`
	CurrentBatsmanID *uint        `json:"current_batsman_id,omitempty"`
	CurrentBowlerID  *uint        `json:"current_bowler_id,omitempty"`
}

type PlayerStat struct {
	GameID      uint      `gorm:"primaryKey" json:"game_id"`
	PlayerID    uint      `gorm:"primaryKey" json:"player_id"`
	TeamID      uint      `gorm:"not null" json:"team_id"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	Runs        int       `gorm:"not null;default:0" json:"runs"`
	Balls       int       `gorm:"not null;default:0" json:"balls"`
	Wickets     int       `gorm:"not null;default:0" json:"wickets"`
	LastUpdated time.Time `json:"last_updated"`
}

// ScoreEvent rows are append-only: the scoring path inserts them and
// nothing edits them afterwards, they can only be deleted.
type ScoreEvent struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	GameID      uint         `gorm:"not null;index" json:"game_id"`
	TeamID      uint         `gorm:"not null" json:"team_id"`
	PlayerID    *uint        `json:"player_id"`
	Sport       Sport        `gorm:"not null" json:"sport"`
	Points      int          `gorm:"not null;default:0" json:"points"`
	Runs        int          `gorm:"not null;default:0" json:"runs"`
	Wicket      bool         `gorm:"not null;default:false" json:"wicket"`
	BattingSide *BattingSide `json:"batting_side,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
