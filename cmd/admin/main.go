package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: admin <command> [flags]

commands:
  status     server status
  settings   effective world settings
  kick       -player <id>
  ban        -username <name>
  unban      -username <name>
  heal       -player <id>
  teleport   -player <id> -x <n> -y <n>
  gang-war   -gang <id> -gangb <id> [-duration_ms <n>]
  map-save   -map <id>
  map-load   -map <id>
  snapshot   write a world snapshot`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "status":
		call(args, "/admin/v1/status", nil)
	case "settings":
		call(args, "/admin/v1/settings", nil)
	case "kick":
		callWith(args, "/admin/v1/kick", "player", "playerId")
	case "ban":
		callWith(args, "/admin/v1/ban", "username", "username")
	case "unban":
		callWith(args, "/admin/v1/unban", "username", "username")
	case "heal":
		callWith(args, "/admin/v1/heal", "player", "playerId")
	case "teleport":
		teleportCmd(args)
	case "gang-war":
		gangWarCmd(args)
	case "map-save":
		callWith(args, "/admin/v1/map/save", "map", "mapId")
	case "map-load":
		callWith(args, "/admin/v1/map/load", "map", "mapId")
	case "snapshot":
		call(args, "/admin/v1/snapshot", nil)
	default:
		usage()
	}
}

func commonFlags(fs *flag.FlagSet) (baseURL, token *string) {
	baseURL = fs.String("url", "http://127.0.0.1:8080", "server base url")
	token = fs.String("token", os.Getenv("UN_ADMIN_TOKEN"), "admin bearer token")
	return
}

func call(args []string, path string, body []byte) {
	fs := flag.NewFlagSet(path, flag.ExitOnError)
	baseURL, token := commonFlags(fs)
	_ = fs.Parse(args)
	do(*baseURL, *token, path, body)
}

func callWith(args []string, path, flagName, jsonKey string) {
	fs := flag.NewFlagSet(path, flag.ExitOnError)
	baseURL, token := commonFlags(fs)
	val := fs.String(flagName, "", jsonKey)
	_ = fs.Parse(args)
	if *val == "" {
		fmt.Fprintf(os.Stderr, "-%s is required\n", flagName)
		os.Exit(2)
	}
	do(*baseURL, *token, path, []byte(fmt.Sprintf(`{%q:%q}`, jsonKey, *val)))
}

func teleportCmd(args []string) {
	fs := flag.NewFlagSet("teleport", flag.ExitOnError)
	baseURL, token := commonFlags(fs)
	player := fs.String("player", "", "player id")
	x := fs.Float64("x", 0, "x")
	y := fs.Float64("y", 0, "y")
	_ = fs.Parse(args)
	body := fmt.Sprintf(`{"playerId":%q,"x":%g,"y":%g}`, *player, *x, *y)
	do(*baseURL, *token, "/admin/v1/teleport", []byte(body))
}

func gangWarCmd(args []string) {
	fs := flag.NewFlagSet("gang-war", flag.ExitOnError)
	baseURL, token := commonFlags(fs)
	gang := fs.String("gang", "", "gang id")
	gangB := fs.String("gangb", "", "opposing gang id")
	dur := fs.Int("duration_ms", 0, "war duration (0 = server default)")
	_ = fs.Parse(args)
	body := fmt.Sprintf(`{"gangId":%q,"gangB":%q,"durationMs":%d}`, *gang, *gangB, *dur)
	do(*baseURL, *token, "/admin/v1/gang/war", []byte(body))
}

func do(baseURL, token, path string, body []byte) {
	u := strings.TrimRight(strings.TrimSpace(baseURL), "/") + path
	req, _ := http.NewRequest(http.MethodPost, u, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	cl := &http.Client{Timeout: 10 * time.Second}
	resp, err := cl.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	fmt.Println(string(b))
	if resp.StatusCode/100 != 2 {
		os.Exit(1)
	}
}
