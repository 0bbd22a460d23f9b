package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the durable user/profile/chat collaborator. The simulation core
// treats it as optional: callers fall back to ephemeral identity when any
// method fails.
type Store struct {
	db *sql.DB
}

type User struct {
	ID        int64
	Username  string
	Role      string
	CreatedAt time.Time
}

type Profile struct {
	Username string
	X        float64
	Y        float64
	Health   int
	Money    int
	Kills    int
	Deaths   int
	WeaponID string
}

var ErrNotFound = errors.New("profiles: not found")

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("profiles: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE COLLATE NOCASE,
			role TEXT NOT NULL DEFAULT 'player',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS player_profiles (
			username TEXT PRIMARY KEY COLLATE NOCASE,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			health INTEGER NOT NULL DEFAULT 100,
			money INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			weapon_id TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			channel TEXT NOT NULL DEFAULT 'GLOBAL',
			message TEXT NOT NULL,
			sent_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sent_at ON chat_messages(sent_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, role, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, username, role string) (User, error) {
	if role == "" {
		role = "player"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, role, created_at) VALUES (?, ?, ?)`,
		username, role, now())
	if err != nil {
		return User{}, err
	}
	id, _ := res.LastInsertId()
	return User{ID: id, Username: username, Role: role, CreatedAt: time.Now().UTC()}, nil
}

func (s *Store) CreatePlayerProfile(ctx context.Context, p Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_profiles (username, x, y, health, money, kills, deaths, weapon_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Username, p.X, p.Y, p.Health, p.Money, p.Kills, p.Deaths, p.WeaponID, now())
	return err
}

func (s *Store) GetPlayerProfile(ctx context.Context, username string) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT username, x, y, health, money, kills, deaths, weapon_id
		 FROM player_profiles WHERE username = ?`, username).
		Scan(&p.Username, &p.X, &p.Y, &p.Health, &p.Money, &p.Kills, &p.Deaths, &p.WeaponID)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *Store) UpdatePlayerProfile(ctx context.Context, p Profile) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE player_profiles
		 SET x = ?, y = ?, health = ?, money = ?, kills = ?, deaths = ?, weapon_id = ?, updated_at = ?
		 WHERE username = ?`,
		p.X, p.Y, p.Health, p.Money, p.Kills, p.Deaths, p.WeaponID, now(), p.Username)
	return err
}

func (s *Store) SaveChatMessage(ctx context.Context, username, channel, message string) error {
	if channel == "" {
		channel = "GLOBAL"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (username, channel, message, sent_at) VALUES (?, ?, ?, ?)`,
		username, channel, message, now())
	return err
}
