package report

import (
	"sort"
	"time"

	"pad/internal/models"
	"pad/internal/structures"
)

// Options bounds the aggregate computation.
type Options struct {
	WindowDays     int
	CoreActiveDays int
	AtRiskDays     int
	TopN           int
}

func OptionsFromConfig(conf *structures.Config) Options {
	return Options{
		WindowDays:     conf.Tracker.WindowDays,
		CoreActiveDays: conf.Tracker.CoreActiveDays,
		AtRiskDays:     conf.Tracker.AtRiskDays,
		TopN:           conf.Tracker.TopN,
	}
}

type DailyPoint struct {
	Date          string `json:"date"`
	Peak          int    `json:"peak"`
	NewPlayers    int    `json:"new_players"`
	ActivePlayers int    `json:"active_players"`
}

type PlayerRank struct {
	Username string `json:"username"`
	UUID     string `json:"uuid"`
	PlayTime string `json:"play_time"`
}

type ServerShare struct {
	Server   string `json:"server"`
	Sessions int    `json:"sessions"`
}

// Summary is the full computed payload of one report cycle. It is both
// rendered into the template and embedded as JSON for client-side use.
type Summary struct {
	GeneratedAt        string        `json:"generated_at"`
	WindowDays         int           `json:"window_days"`
	StartupTime        string        `json:"startup_time"`
	TotalPlayers       int           `json:"total_players"`
	NewPlayers         int           `json:"new_players"`
	ReturningPlayers   int           `json:"returning_players"`
	CorePlayers        int           `json:"core_players"`
	AtRiskPlayers      int           `json:"at_risk_players"`
	AverageDailyActive float64       `json:"average_daily_active"`
	HistoricalPeak     int           `json:"historical_peak"`
	Daily              []DailyPoint  `json:"daily"`
	HourlyLogins       [24]int       `json:"hourly_logins"`
	WeekdayLogins      [7]int        `json:"weekday_logins"`
	Servers            []ServerShare `json:"servers"`
	TopPlayers         []PlayerRank  `json:"top_players"`
	TopDays            []DailyPoint  `json:"top_days"`
	TopServers         []ServerShare `json:"top_servers"`
}

// Compute derives every report aggregate from a point-in-time snapshot.
// The window covers the last opts.WindowDays calendar days including
// today; day keys sort lexically, so range checks are string compares.
func Compute(agg *models.RootAggregate, now time.Time, opts Options) *Summary {
	if opts.WindowDays < 1 {
		opts.WindowDays = 1
	}
	startKey := models.DayKey(now.AddDate(0, 0, -(opts.WindowDays - 1)))
	endKey := models.DayKey(now)
	inWindow := func(key string) bool { return key >= startKey && key <= endKey }

	sum := &Summary{
		GeneratedAt:    models.NewTimestamp(now).String(),
		WindowDays:     opts.WindowDays,
		StartupTime:    agg.ServerInfo.StartupTime.String(),
		TotalPlayers:   len(agg.PlayerData),
		HistoricalPeak: agg.ServerTracking.HistoricalPeakOnline,
	}

	activeByDay := make(map[string]int)
	serverSessions := make(map[string]int)
	atRiskCutoff := now.AddDate(0, 0, -opts.AtRiskDays)

	for _, p := range agg.PlayerData {
		activeDays := make(map[string]struct{})
		for day, path := range p.DailyServerPaths {
			if !inWindow(day) {
				continue
			}
			activeDays[day] = struct{}{}
			for _, entry := range path {
				sum.HourlyLogins[entry.Time.Hour()]++
				sum.WeekdayLogins[int(entry.Time.Weekday())]++
				serverSessions[entry.To]++
			}
		}
		if !p.LastLoginTime.IsZero() {
			if day := models.DayKey(p.LastLoginTime.Time); inWindow(day) {
				activeDays[day] = struct{}{}
			}
		}
		if !p.FirstJoinTime.IsZero() {
			if day := models.DayKey(p.FirstJoinTime.Time); inWindow(day) {
				activeDays[day] = struct{}{}
			}
		}

		for day := range activeDays {
			activeByDay[day]++
		}
		if len(activeDays) > 0 && models.DayKey(p.FirstJoinTime.Time) < startKey {
			sum.ReturningPlayers++
		}
		if len(activeDays) >= opts.CoreActiveDays {
			sum.CorePlayers++
		}

		lastSeen := p.LastLoginTime.Time
		if p.LastQuitTime.After(lastSeen) {
			lastSeen = p.LastQuitTime.Time
		}
		if !lastSeen.IsZero() && lastSeen.Before(atRiskCutoff) {
			sum.AtRiskPlayers++
		}
	}

	activeTotal := 0
	for day := startKey; ; {
		t, _ := models.ParseDayKey(day)
		peak := 0
		if dp := agg.ServerTracking.DailyPeakOnline[day]; dp != nil {
			peak = dp.Overall
		}
		newcomers := 0
		if np := agg.ServerTracking.DailyNewPlayers[day]; np != nil {
			newcomers = np.Overall
			sum.NewPlayers += np.Overall
		}
		sum.Daily = append(sum.Daily, DailyPoint{
			Date:          day,
			Peak:          peak,
			NewPlayers:    newcomers,
			ActivePlayers: activeByDay[day],
		})
		activeTotal += activeByDay[day]
		if day == endKey {
			break
		}
		day = models.DayKey(t.AddDate(0, 0, 1))
	}
	if opts.WindowDays > 0 {
		sum.AverageDailyActive = float64(activeTotal) / float64(opts.WindowDays)
	}

	sum.Servers = make([]ServerShare, 0, len(serverSessions))
	for server, sessions := range serverSessions {
		sum.Servers = append(sum.Servers, ServerShare{Server: server, Sessions: sessions})
	}
	sort.Slice(sum.Servers, func(i, j int) bool {
		if sum.Servers[i].Sessions != sum.Servers[j].Sessions {
			return sum.Servers[i].Sessions > sum.Servers[j].Sessions
		}
		return sum.Servers[i].Server < sum.Servers[j].Server
	})
	sum.TopServers = topN(sum.Servers, opts.TopN)

	ranked := make([]*models.PlayerRecord, len(agg.PlayerData))
	copy(ranked, agg.PlayerData)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PlayTime != ranked[j].PlayTime {
			return ranked[i].PlayTime > ranked[j].PlayTime
		}
		return ranked[i].ID < ranked[j].ID
	})
	for _, p := range topN(ranked, opts.TopN) {
		sum.TopPlayers = append(sum.TopPlayers, PlayerRank{
			Username: p.Username,
			UUID:     p.UUID,
			PlayTime: p.PlayTime.String(),
		})
	}

	byPeak := make([]DailyPoint, len(sum.Daily))
	copy(byPeak, sum.Daily)
	sort.Slice(byPeak, func(i, j int) bool {
		if byPeak[i].Peak != byPeak[j].Peak {
			return byPeak[i].Peak > byPeak[j].Peak
		}
		return byPeak[i].Date < byPeak[j].Date
	})
	sum.TopDays = topN(byPeak, opts.TopN)

	return sum
}

func topN[T any](items []T, n int) []T {
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
