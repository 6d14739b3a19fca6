package scoring

import "github.com/cricstack/tournament-service/internal/model"

// Result is the outcome of comparing two completed innings.
// Exactly one of WinnerID (with a margin) or Tied describes the contest.
type Result struct {
	WinnerID   int64
	LoserID    int64
	MarginRuns int
	MarginWkts int
	Tied       bool
}

// DecideResult compares the two innings of a finished match. The side batting
// first wins by the run difference; the chasing side wins by wickets
// remaining; equal totals tie the match.
func DecideResult(first, second model.Innings) Result {
	switch {
	case first.TotalRuns > second.TotalRuns:
		return Result{
			WinnerID:   first.TeamID,
			LoserID:    second.TeamID,
			MarginRuns: first.TotalRuns - second.TotalRuns,
		}
	case second.TotalRuns > first.TotalRuns:
		return Result{
			WinnerID:   second.TeamID,
			LoserID:    first.TeamID,
			MarginWkts: MaxWickets - second.Wickets,
		}
	default:
		return Result{Tied: true}
	}
}

// RollUpTeam folds one completed match into a team's cumulative record.
// own is the team's batting innings, opp the opponent's. Points follow the
// 2-1-0 scheme; the net run rate is recomputed from the full accumulated
// counts, not incrementally.
func RollUpTeam(team *model.Team, own, opp model.Innings, res Result) {
	team.MatchesPlayed++
	switch {
	case res.Tied:
		team.MatchesTied++
		team.Points++
	case res.WinnerID == team.ID:
		team.MatchesWon++
		team.Points += 2
	default:
		team.MatchesLost++
	}
	team.RunsScored += own.TotalRuns
	team.BallsFaced += own.LegalBalls
	team.RunsConceded += opp.TotalRuns
	team.BallsBowled += opp.LegalBalls
	team.NetRunRate = NetRunRate(team.RunsScored, team.BallsFaced, team.RunsConceded, team.BallsBowled)
}

// RollUpCareers folds an innings' scorecard lines into player career stats.
// The returned map is keyed by player ID; a player appearing in both the
// batting and bowling card contributes once to each stat.
func RollUpCareers(inn model.Innings, into map[int64]*model.CareerStats) {
	line := func(id int64) *model.CareerStats {
		cs, ok := into[id]
		if !ok {
			cs = &model.CareerStats{}
			into[id] = cs
		}
		return cs
	}
	for _, b := range inn.Batters {
		cs := line(b.PlayerID)
		cs.Runs += b.Runs
		if b.Runs > cs.HighestScore {
			cs.HighestScore = b.Runs
		}
	}
	for _, bw := range inn.Bowlers {
		line(bw.PlayerID).Wickets += bw.Wickets
	}
}
