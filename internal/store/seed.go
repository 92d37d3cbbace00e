package store

import "github.com/pitchside/live-engine/internal/model"

// Seed is a complete set of reference data.
type Seed struct {
	Fixtures    []model.Match
	PointsTable []model.PointsTableEntry
	Schedule    []model.ScheduleMatch
}

var (
	teamCSK  = model.Team{Name: "Chennai Super Kings", ShortName: "CSK"}
	teamMI   = model.Team{Name: "Mumbai Indians", ShortName: "MI"}
	teamRCB  = model.Team{Name: "Royal Challengers Bengaluru", ShortName: "RCB"}
	teamKKR  = model.Team{Name: "Kolkata Knight Riders", ShortName: "KKR"}
	teamDC   = model.Team{Name: "Delhi Capitals", ShortName: "DC"}
	teamRR   = model.Team{Name: "Rajasthan Royals", ShortName: "RR"}
	teamSRH  = model.Team{Name: "Sunrisers Hyderabad", ShortName: "SRH"}
	teamPBKS = model.Team{Name: "Punjab Kings", ShortName: "PBKS"}
	teamGT   = model.Team{Name: "Gujarat Titans", ShortName: "GT"}
	teamLSG  = model.Team{Name: "Lucknow Super Giants", ShortName: "LSG"}
)

// DefaultSeed returns the development data set used when no database is
// configured.
func DefaultSeed() Seed {
	return Seed{
		Fixtures: []model.Match{
			{
				ID: 1, Team1: teamCSK, Team2: teamMI, Status: model.StatusLive,
				Venue: "MA Chidambaram Stadium, Chennai", Date: "2026-04-12", Time: "19:30",
				Score: &model.Scorecard{
					Team1: model.MatchScore{Runs: 186, Wickets: 6, Overs: 20},
					Team2: model.MatchScore{Runs: 94, Wickets: 3, Overs: 11.2},
				},
			},
			{
				ID: 2, Team1: teamRCB, Team2: teamKKR, Status: model.StatusLive,
				Venue: "M. Chinnaswamy Stadium, Bengaluru", Date: "2026-04-12", Time: "15:30",
				Score: &model.Scorecard{
					Team1: model.MatchScore{Runs: 201, Wickets: 4, Overs: 20},
					Team2: model.MatchScore{Runs: 46, Wickets: 1, Overs: 4.5},
				},
			},
			{
				ID: 3, Team1: teamDC, Team2: teamRR, Status: model.StatusUpcoming,
				Venue: "Arun Jaitley Stadium, Delhi", Date: "2026-04-13", Time: "19:30",
			},
			{
				ID: 4, Team1: teamSRH, Team2: teamPBKS, Status: model.StatusUpcoming,
				Venue: "Rajiv Gandhi International Stadium, Hyderabad", Date: "2026-04-14", Time: "19:30",
			},
			{
				ID: 5, Team1: teamGT, Team2: teamLSG, Status: model.StatusCompleted,
				Venue: "Narendra Modi Stadium, Ahmedabad", Date: "2026-04-11", Time: "19:30",
				Score: &model.Scorecard{
					Team1: model.MatchScore{Runs: 172, Wickets: 7, Overs: 20},
					Team2: model.MatchScore{Runs: 158, Wickets: 9, Overs: 20},
				},
				Result: "GT won by 14 runs",
			},
		},
		PointsTable: []model.PointsTableEntry{
			{Team: teamCSK, Matches: 5, Won: 4, Lost: 1, Points: 8, NRR: "+0.985", Form: []string{"W", "W", "L", "W", "W"}},
			{Team: teamRCB, Matches: 5, Won: 4, Lost: 1, Points: 8, NRR: "+0.712", Form: []string{"W", "L", "W", "W", "W"}},
			{Team: teamGT, Matches: 5, Won: 3, Lost: 2, Points: 6, NRR: "+0.301", Form: []string{"W", "W", "L", "L", "W"}},
			{Team: teamKKR, Matches: 5, Won: 3, Lost: 2, Points: 6, NRR: "+0.122", Form: []string{"L", "W", "W", "L", "W"}},
			{Team: teamMI, Matches: 5, Won: 3, Lost: 2, Points: 6, NRR: "-0.046", Form: []string{"L", "W", "W", "W", "L"}},
			{Team: teamRR, Matches: 5, Won: 2, Lost: 3, Points: 4, NRR: "+0.054", Form: []string{"W", "L", "L", "W", "L"}},
			{Team: teamDC, Matches: 5, Won: 2, Lost: 3, Points: 4, NRR: "-0.218", Form: []string{"L", "L", "W", "L", "W"}},
			{Team: teamLSG, Matches: 5, Won: 2, Lost: 3, Points: 4, NRR: "-0.410", Form: []string{"L", "W", "L", "W", "L"}},
			{Team: teamSRH, Matches: 5, Won: 1, Lost: 4, Points: 2, NRR: "-0.637", Form: []string{"L", "L", "L", "W", "L"}},
			{Team: teamPBKS, Matches: 5, Won: 1, Lost: 4, Points: 2, NRR: "-0.904", Form: []string{"W", "L", "L", "L", "L"}},
		},
		Schedule: []model.ScheduleMatch{
			{ID: 5, MatchNumber: "Match 25", Team1: teamGT, Team2: teamLSG, Date: "2026-04-11", Time: "19:30", Venue: "Narendra Modi Stadium, Ahmedabad", Status: model.StatusCompleted, Result: "GT won by 14 runs"},
			{ID: 2, MatchNumber: "Match 26", Team1: teamRCB, Team2: teamKKR, Date: "2026-04-12", Time: "15:30", Venue: "M. Chinnaswamy Stadium, Bengaluru", Status: model.StatusLive},
			{ID: 1, MatchNumber: "Match 27", Team1: teamCSK, Team2: teamMI, Date: "2026-04-12", Time: "19:30", Venue: "MA Chidambaram Stadium, Chennai", Status: model.StatusLive},
			{ID: 3, MatchNumber: "Match 28", Team1: teamDC, Team2: teamRR, Date: "2026-04-13", Time: "19:30", Venue: "Arun Jaitley Stadium, Delhi", Status: model.StatusUpcoming},
			{ID: 4, MatchNumber: "Match 29", Team1: teamSRH, Team2: teamPBKS, Date: "2026-04-14", Time: "19:30", Venue: "Rajiv Gandhi International Stadium, Hyderabad", Status: model.StatusUpcoming},
		},
	}
}
