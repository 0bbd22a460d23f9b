package protocol

// Vec2 is a world-space position or direction.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerInfo is the wire form of a player.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  Vec2   `json:"position"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
	Ammo      int    `json:"ammo"`
	Money     int    `json:"money"`
	Kills     int    `json:"kills"`
	Deaths    int    `json:"deaths"`
	WeaponID  string `json:"weaponId"`
	IsAlive   bool   `json:"isAlive"`
	GangID    string `json:"gangId,omitempty"`
	GangRank  string `json:"gangRank,omitempty"`
	Color     string `json:"color,omitempty"`
}

// BulletInfo is the wire form of a live projectile.
type BulletInfo struct {
	ID       string  `json:"id"`
	OwnerID  string  `json:"ownerId"`
	Position Vec2    `json:"position"`
	Dir      Vec2    `json:"direction"`
	Damage   int     `json:"damage"`
	Speed    float64 `json:"speed"`
	WeaponID string  `json:"weaponId"`
}

// GangInfo is the wire form of a gang.
type GangInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LeaderID  string   `json:"leaderId"`
	MemberIDs []string `json:"memberIds"`
	Color     string   `json:"color,omitempty"`
	Score     int      `json:"score"`
	Territory *Rect    `json:"territory,omitempty"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PLAYER_JOIN (client -> server, handshake; server -> all, announcement)
type PlayerJoinMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version,omitempty"`
	Name            string      `json:"name,omitempty"`
	Username        string      `json:"username,omitempty"`
	Color           string      `json:"color,omitempty"`
	Player          *PlayerInfo `json:"player,omitempty"`
}

// JOIN_ACK (server -> joining client only)
type JoinAckMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerID        string `json:"playerId"`
	SessionToken    string `json:"sessionToken"`
	MapID           string `json:"mapId"`
	TickRateHz      int    `json:"tick_rate_hz"`
	WeaponsDigest   string `json:"weapons_digest"`
}

// PLAYER_LEAVE (server -> all)
type PlayerLeaveMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// PLAYER_MOVE (client -> server; server -> all on accept)
type PlayerMoveMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	Position Vec2   `json:"position"`
}

// PLAYER_SHOOT (client -> server; server -> all with the spawned bullet)
type PlayerShootMsg struct {
	Type      string      `json:"type"`
	PlayerID  string      `json:"playerId,omitempty"`
	Direction Vec2        `json:"direction"`
	Bullet    *BulletInfo `json:"bullet,omitempty"`
}

// PLAYER_HIT (server -> all)
type PlayerHitMsg struct {
	Type      string `json:"type"`
	PlayerID  string `json:"playerId"`
	Damage    int    `json:"damage"`
	ShooterID string `json:"shooterId,omitempty"`
	Health    int    `json:"health"`
}

// PLAYER_DEATH (server -> all)
type PlayerDeathMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	KillerID string `json:"killerId,omitempty"`
}

// PLAYER_RESPAWN (server -> all)
type PlayerRespawnMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Position Vec2   `json:"position"`
	Health   int    `json:"health"`
}

// CHAT_MESSAGE (client -> server; server -> all or gang)
type ChatMessageMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name,omitempty"`
	Channel  string `json:"channel,omitempty"` // "GLOBAL" (default) or "GANG"
	Text     string `json:"message"`
}

// GANG_CREATE (client -> server; server -> all with the created gang)
type GangCreateMsg struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId,omitempty"`
	Name     string    `json:"name,omitempty"`
	Color    string    `json:"color,omitempty"`
	Gang     *GangInfo `json:"gang,omitempty"`
}

// GANG_JOIN (client -> server; server -> all on accept)
type GangJoinMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	GangID   string `json:"gangId"`
}

// GANG_LEAVE (client -> server; server -> all on accept)
type GangLeaveMsg struct {
	Type      string `json:"type"`
	PlayerID  string `json:"playerId,omitempty"`
	GangID    string `json:"gangId,omitempty"`
	Disbanded bool   `json:"disbanded,omitempty"`
}

// GANG_KICK (client -> server, leader only; server -> all on accept)
type GangKickMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"` // acting leader
	TargetID string `json:"targetId"`
	GangID   string `json:"gangId,omitempty"`
}

// GANG_PROMOTE (client -> server, leader only; server -> all on accept)
type GangPromoteMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"` // acting leader
	TargetID string `json:"targetId"`
	GangID   string `json:"gangId,omitempty"`
}

// GANG_WAR (server -> all: declaration and resolution)
type GangWarMsg struct {
	Type     string `json:"type"`
	GangA    string `json:"gangA"`
	GangB    string `json:"gangB"`
	Phase    string `json:"phase"` // "STARTED" or "ENDED"
	WinnerID string `json:"winnerId,omitempty"`
	Award    int    `json:"award,omitempty"`
}

// GAME_STATE_UPDATE (server -> all, snapshot cadence)
type GameStateMsg struct {
	Type    string       `json:"type"`
	Tick    uint64       `json:"tick"`
	MapID   string       `json:"mapId"`
	Players []PlayerInfo `json:"players"`
	Bullets []BulletInfo `json:"bullets"`
	Gangs   []GangInfo   `json:"gangs"`
}
