package protocol

import "encoding/json"

const Version = "1.0"

// Event tags.
const (
	TypePlayerJoin    = "PLAYER_JOIN"
	TypeJoinAck       = "JOIN_ACK"
	TypePlayerLeave   = "PLAYER_LEAVE"
	TypePlayerMove    = "PLAYER_MOVE"
	TypePlayerShoot   = "PLAYER_SHOOT"
	TypePlayerHit     = "PLAYER_HIT"
	TypePlayerDeath   = "PLAYER_DEATH"
	TypePlayerRespawn = "PLAYER_RESPAWN"
	TypeChatMessage   = "CHAT_MESSAGE"
	TypeGangCreate    = "GANG_CREATE"
	TypeGangJoin      = "GANG_JOIN"
	TypeGangLeave     = "GANG_LEAVE"
	TypeGangKick      = "GANG_KICK"
	TypeGangPromote   = "GANG_PROMOTE"
	TypeGangWar       = "GANG_WAR"
	TypeGameState     = "GAME_STATE_UPDATE"
)

// BaseMessage lets us route unknown JSON frames by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// Decode unmarshals a frame into its closed variant type. Unknown tags
// return ok=false so the caller can log and drop the frame.
func Decode(b []byte) (msg any, ok bool, err error) {
	base, err := DecodeBase(b)
	if err != nil {
		return nil, false, err
	}
	into := func(v any) (any, bool, error) {
		if err := json.Unmarshal(b, v); err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	switch base.Type {
	case TypePlayerJoin:
		return into(&PlayerJoinMsg{})
	case TypePlayerLeave:
		return into(&PlayerLeaveMsg{})
	case TypePlayerMove:
		return into(&PlayerMoveMsg{})
	case TypePlayerShoot:
		return into(&PlayerShootMsg{})
	case TypeChatMessage:
		return into(&ChatMessageMsg{})
	case TypeGangCreate:
		return into(&GangCreateMsg{})
	case TypeGangJoin:
		return into(&GangJoinMsg{})
	case TypeGangLeave:
		return into(&GangLeaveMsg{})
	case TypeGangKick:
		return into(&GangKickMsg{})
	case TypeGangPromote:
		return into(&GangPromoteMsg{})
	default:
		return nil, false, nil
	}
}
