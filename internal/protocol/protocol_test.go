package protocol

import (
	"testing"
)

func TestDecode_RoutesClientFrames(t *testing.T) {
	msg, ok, err := Decode([]byte(`{"type":"PLAYER_MOVE","position":{"x":10,"y":20}}`))
	if err != nil || !ok {
		t.Fatalf("decode: ok=%v err=%v", ok, err)
	}
	mv, isMove := msg.(*PlayerMoveMsg)
	if !isMove {
		t.Fatalf("decoded %T", msg)
	}
	if mv.Position.X != 10 || mv.Position.Y != 20 {
		t.Fatalf("position = %+v", mv.Position)
	}

	msg, ok, err = Decode([]byte(`{"type":"PLAYER_SHOOT","direction":{"x":1,"y":0}}`))
	if err != nil || !ok {
		t.Fatalf("decode shoot: ok=%v err=%v", ok, err)
	}
	if _, isShoot := msg.(*PlayerShootMsg); !isShoot {
		t.Fatalf("decoded %T", msg)
	}

	msg, ok, err = Decode([]byte(`{"type":"CHAT_MESSAGE","channel":"GANG","message":"yo"}`))
	if err != nil || !ok {
		t.Fatalf("decode chat: ok=%v err=%v", ok, err)
	}
	chat := msg.(*ChatMessageMsg)
	if chat.Channel != "GANG" || chat.Text != "yo" {
		t.Fatalf("chat = %+v", chat)
	}
}

func TestDecode_UnknownTagIsNotAnError(t *testing.T) {
	msg, ok, err := Decode([]byte(`{"type":"GAME_STATE_UPDATE","tick":1}`))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if ok || msg != nil {
		t.Fatalf("server-only tag decoded as client frame: %T", msg)
	}

	_, ok, err = Decode([]byte(`{"type":"TELEPORT_HOME"}`))
	if err != nil || ok {
		t.Fatalf("unknown tag: ok=%v err=%v", ok, err)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	if _, _, err := Decode([]byte(`{"type":`)); err == nil {
		t.Fatalf("malformed frame accepted")
	}
	// Right tag, wrong field shape.
	if _, _, err := Decode([]byte(`{"type":"PLAYER_MOVE","position":"north"}`)); err == nil {
		t.Fatalf("mistyped position accepted")
	}
}

func TestDecodeBase(t *testing.T) {
	base, err := DecodeBase([]byte(`{"type":"PLAYER_JOIN","protocol_version":"1.0"}`))
	if err != nil {
		t.Fatalf("decode base: %v", err)
	}
	if base.Type != TypePlayerJoin || base.ProtocolVersion != Version {
		t.Fatalf("base = %+v", base)
	}
}

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode(ErrBanned) {
		t.Fatalf("%s not known", ErrBanned)
	}
	if IsKnownCode("E_MADE_UP") {
		t.Fatalf("bogus code known")
	}
}
