package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	joinSchema := compile("player_join.schema.json")
	moveSchema := compile("player_move.schema.json")
	shootSchema := compile("player_shoot.schema.json")
	stateSchema := compile("game_state.schema.json")

	var join any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLAYER_JOIN",
	  "protocol_version":"1.0",
	  "name":"ace",
	  "username":"ace42",
	  "color":"#e6194b"
	}`), &join)
	validate(joinSchema, join)

	var move any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLAYER_MOVE",
	  "position":{"x":128.5,"y":640.0}
	}`), &move)
	validate(moveSchema, move)

	var shoot any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLAYER_SHOOT",
	  "direction":{"x":0.707,"y":-0.707}
	}`), &shoot)
	validate(shootSchema, shoot)

	var state any
	_ = json.Unmarshal([]byte(`{
	  "type":"GAME_STATE_UPDATE",
	  "tick":600,
	  "mapId":"downtown",
	  "players":[{
	    "id":"P000001","name":"ace",
	    "position":{"x":128.5,"y":640.0},
	    "health":85,"maxHealth":100,"ammo":47,"money":250,
	    "kills":2,"deaths":1,"weaponId":"pistol","isAlive":true
	  }],
	  "bullets":[{
	    "id":"B00000001","ownerId":"P000001",
	    "position":{"x":200,"y":640},"direction":{"x":1,"y":0},
	    "damage":15,"speed":800,"weaponId":"pistol"
	  }],
	  "gangs":[{
	    "id":"G0001","name":"Kings","leaderId":"P000001",
	    "memberIds":["P000001"],"score":500
	  }]
	}`), &state)
	validate(stateSchema, state)
}
