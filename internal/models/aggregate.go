package models

// ServerInfo holds the two lifetime marks of the deployment.
type ServerInfo struct {
	StartupTime              Timestamp `json:"startup_time"`
	LastReportGenerationTime Timestamp `json:"last_report_generation_time"`
}

// SubServerPeak is the per-backend daily online watermark.
type SubServerPeak struct {
	ServerName string `json:"server_name"`
	PeakOnline int    `json:"peak_online"`
}

// DayPeak tracks the overall and per-backend online watermarks for one day.
// Both are monotone maxima and are never reset within the day.
type DayPeak struct {
	Overall   int              `json:"overall"`
	SubServer []*SubServerPeak `json:"sub_server"`
}

func (d *DayPeak) Sub(serverName string) *SubServerPeak {
	for _, s := range d.SubServer {
		if s.ServerName == serverName {
			return s
		}
	}
	return nil
}

// NewPlayerEntry records one first-ever join.
type NewPlayerEntry struct {
	UUID string    `json:"uuid"`
	Time Timestamp `json:"time"`
}

// DayNewPlayers lists the identities first seen on one day.
// Overall always equals len(Players).
type DayNewPlayers struct {
	Overall int               `json:"overall"`
	Players []*NewPlayerEntry `json:"players"`
}

// PathEntry is one server-to-server transfer. The first entry of a day may
// carry From == "unknown" when no earlier state exists for that day.
type PathEntry struct {
	Time Timestamp `json:"time"`
	From string    `json:"from"`
	To   string    `json:"to"`
}

// UnknownServer marks a transfer origin that cannot be derived from the
// day's path state.
const UnknownServer = "unknown"

// ServerTracking aggregates deployment-wide counters.
type ServerTracking struct {
	HistoricalPeakOnline int                       `json:"historical_peak_online"`
	DailyPeakOnline      map[string]*DayPeak       `json:"daily_peak_online"`
	DailyNewPlayers      map[string]*DayNewPlayers `json:"daily_new_players"`
}

// PlayerRecord is the per-identity aggregate. Records are created on first
// login and never deleted.
type PlayerRecord struct {
	ID               int                     `json:"id"`
	UUID             string                  `json:"uuid"`
	Username         string                  `json:"username"`
	FirstJoinTime    Timestamp               `json:"first_join_time"`
	LastLoginTime    Timestamp               `json:"last_login_time"`
	LastQuitTime     Timestamp               `json:"last_quit_time"`
	PlayTime         PlayTime                `json:"play_time"`
	DailyServerPaths map[string][]*PathEntry `json:"daily_server_paths"`
}

// RootAggregate is the whole persisted document.
type RootAggregate struct {
	ServerInfo     *ServerInfo     `json:"server_info"`
	ServerTracking *ServerTracking `json:"server_tracking"`
	PlayerData     []*PlayerRecord `json:"player_data"`
}

// NewRootAggregate returns an empty aggregate with every collection
// constructed.
func NewRootAggregate() *RootAggregate {
	return &RootAggregate{
		ServerInfo: &ServerInfo{},
		ServerTracking: &ServerTracking{
			DailyPeakOnline: make(map[string]*DayPeak),
			DailyNewPlayers: make(map[string]*DayNewPlayers),
		},
		PlayerData: make([]*PlayerRecord, 0),
	}
}

// Normalize default-constructs every missing nested field and restores the
// derived invariants after a load. It is the single validation pass for
// documents produced by older or partially written files.
func (a *RootAggregate) Normalize() {
	if a.ServerInfo == nil {
		a.ServerInfo = &ServerInfo{}
	}
	if a.ServerTracking == nil {
		a.ServerTracking = &ServerTracking{}
	}
	if a.ServerTracking.DailyPeakOnline == nil {
		a.ServerTracking.DailyPeakOnline = make(map[string]*DayPeak)
	}
	if a.ServerTracking.DailyNewPlayers == nil {
		a.ServerTracking.DailyNewPlayers = make(map[string]*DayNewPlayers)
	}
	for _, peak := range a.ServerTracking.DailyPeakOnline {
		if peak.SubServer == nil {
			peak.SubServer = make([]*SubServerPeak, 0)
		}
	}
	for _, day := range a.ServerTracking.DailyNewPlayers {
		if day.Players == nil {
			day.Players = make([]*NewPlayerEntry, 0)
		}
		day.Overall = len(day.Players)
	}
	if a.PlayerData == nil {
		a.PlayerData = make([]*PlayerRecord, 0)
	}
	for _, p := range a.PlayerData {
		if p.DailyServerPaths == nil {
			p.DailyServerPaths = make(map[string][]*PathEntry)
		}
	}
}

// NextID returns the next unused sequential player id.
func (a *RootAggregate) NextID() int {
	next := 1
	for _, p := range a.PlayerData {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// Clone returns a deep copy, used for point-in-time snapshots handed to
// persistence and report generation.
func (a *RootAggregate) Clone() *RootAggregate {
	out := &RootAggregate{
		ServerInfo: &ServerInfo{},
		ServerTracking: &ServerTracking{
			HistoricalPeakOnline: a.ServerTracking.HistoricalPeakOnline,
			DailyPeakOnline:      make(map[string]*DayPeak, len(a.ServerTracking.DailyPeakOnline)),
			DailyNewPlayers:      make(map[string]*DayNewPlayers, len(a.ServerTracking.DailyNewPlayers)),
		},
		PlayerData: make([]*PlayerRecord, 0, len(a.PlayerData)),
	}
	*out.ServerInfo = *a.ServerInfo

	for day, peak := range a.ServerTracking.DailyPeakOnline {
		cp := &DayPeak{Overall: peak.Overall, SubServer: make([]*SubServerPeak, 0, len(peak.SubServer))}
		for _, sub := range peak.SubServer {
			subCp := *sub
			cp.SubServer = append(cp.SubServer, &subCp)
		}
		out.ServerTracking.DailyPeakOnline[day] = cp
	}
	for day, np := range a.ServerTracking.DailyNewPlayers {
		cp := &DayNewPlayers{Overall: np.Overall, Players: make([]*NewPlayerEntry, 0, len(np.Players))}
		for _, entry := range np.Players {
			entryCp := *entry
			cp.Players = append(cp.Players, &entryCp)
		}
		out.ServerTracking.DailyNewPlayers[day] = cp
	}
	for _, p := range a.PlayerData {
		out.PlayerData = append(out.PlayerData, p.Clone())
	}
	return out
}

// Clone returns a deep copy of the record.
func (p *PlayerRecord) Clone() *PlayerRecord {
	cp := *p
	cp.DailyServerPaths = make(map[string][]*PathEntry, len(p.DailyServerPaths))
	for day, path := range p.DailyServerPaths {
		entries := make([]*PathEntry, 0, len(path))
		for _, e := range path {
			eCp := *e
			entries = append(entries, &eCp)
		}
		cp.DailyServerPaths[day] = entries
	}
	return &cp
}
