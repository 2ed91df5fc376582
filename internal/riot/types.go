package riot

import "encoding/json"

// Account is the regional riot-id resolution payload. The PUUID is stable
// across renamed display handles.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the platform legacy-name resolution payload.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// Match is the full detail payload for one completed match.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // epoch millis
	GameDuration int           `json:"gameDuration"` // seconds
	GameEndTS    int64         `json:"gameEndTimestamp"`
	GameID       int64         `json:"gameId"`
	GameMode     string        `json:"gameMode"`
	GameType     string        `json:"gameType"`
	GameVersion  string        `json:"gameVersion"`
	MapID        int           `json:"mapId"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// Participant carries the per-player counters the normalizer flattens.
// Missing upstream fields decode to their zero values, which are the stated
// defaults at the normalization boundary.
type Participant struct {
	PUUID              string `json:"puuid"`
	SummonerName       string `json:"summonerName"`
	ChampionName       string `json:"championName"`
	ChampionID         int    `json:"championId"`
	TeamPosition       string `json:"teamPosition"`
	IndividualPosition string `json:"individualPosition"`
	TeamID             int    `json:"teamId"`

	Win                       bool `json:"win"`
	GameEndedInSurrender      bool `json:"gameEndedInSurrender"`
	GameEndedInEarlySurrender bool `json:"gameEndedInEarlySurrender"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalDamageDealt               int `json:"totalDamageDealt"`
	TotalDamageDealtToChampions    int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken               int `json:"totalDamageTaken"`
	PhysicalDamageDealtToChampions int `json:"physicalDamageDealtToChampions"`
	MagicDamageDealtToChampions    int `json:"magicDamageDealtToChampions"`
	TrueDamageDealtToChampions     int `json:"trueDamageDealtToChampions"`
	TotalHeal                      int `json:"totalHeal"`
	DamageSelfMitigated            int `json:"damageSelfMitigated"`

	GoldEarned           int `json:"goldEarned"`
	GoldSpent            int `json:"goldSpent"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	VisionScore             int `json:"visionScore"`
	WardsPlaced             int `json:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled"`
	DetectorWardsPlaced     int `json:"detectorWardsPlaced"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame"`

	TurretKills      int `json:"turretKills"`
	InhibitorKills   int `json:"inhibitorKills"`
	DragonKills      int `json:"dragonKills"`
	BaronKills       int `json:"baronKills"`
	ObjectivesStolen int `json:"objectivesStolen"`

	DoubleKills         int `json:"doubleKills"`
	TripleKills         int `json:"tripleKills"`
	QuadraKills         int `json:"quadraKills"`
	PentaKills          int `json:"pentaKills"`
	KillingSprees       int `json:"killingSprees"`
	LargestKillingSpree int `json:"largestKillingSpree"`
	LargestMultiKill    int `json:"largestMultiKill"`

	TotalTimeCCDealt int `json:"totalTimeCCDealt"`
	TimeCCingOthers  int `json:"timeCCingOthers"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	FirstBloodKill   bool `json:"firstBloodKill"`
	FirstBloodAssist bool `json:"firstBloodAssist"`
	FirstTowerKill   bool `json:"firstTowerKill"`
	FirstTowerAssist bool `json:"firstTowerAssist"`

	ChampLevel      int `json:"champLevel"`
	ChampExperience int `json:"champExperience"`
}

// Timeline is the event-frame payload for one match. Frames are kept raw;
// nothing downstream decodes them yet.
type Timeline struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     struct {
		FrameInterval int64           `json:"frameInterval"`
		Frames        json.RawMessage `json:"frames"`
	} `json:"info"`
}

// MasteryEntry is one champion's mastery standing for a player.
type MasteryEntry struct {
	PUUID                        string `json:"puuid"`
	ChampionID                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int    `json:"championPoints"`
	LastPlayTime                 int64  `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int    `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int    `json:"championPointsUntilNextLevel"`
	ChestGranted                 bool   `json:"chestGranted"`
	TokensEarned                 int    `json:"tokensEarned"`
}
