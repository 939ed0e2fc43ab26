package replay

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a queryable sqlite view over recorded sessions. It is a
// secondary artifact: writes go through a buffered channel and are dropped
// if the indexer falls behind, because the JSONL recordings stay the source
// of truth.
type Index struct {
	db *sql.DB

	ch   chan indexReq
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type indexReq struct {
	session string
	tick    uint64
	digest  string
	intents int
}

// GameRow registers a session in the index.
type GameRow struct {
	SessionID string
	Path      string
	Width     int
	Height    int
}

func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("replay: empty index path")
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

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			session_id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			session_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			digest TEXT NOT NULL,
			intents INTEGER NOT NULL,
			PRIMARY KEY (session_id, tick)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_digest ON ticks(digest);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	idx := &Index{
		db: db,
		ch: make(chan indexReq, 65536),
	}
	idx.wg.Add(1)
	go func() {
		defer idx.wg.Done()
		idx.loop()
	}()
	return idx, nil
}

func (idx *Index) Close() error {
	var err error
	idx.once.Do(func() {
		idx.closed.Store(true)
		close(idx.ch)
		idx.wg.Wait()
		err = idx.db.Close()
	})
	return err
}

// RecordGame registers the session synchronously so tick rows always have a
// parent.
func (idx *Index) RecordGame(row GameRow) error {
	if idx == nil {
		return nil
	}
	_, err := idx.db.Exec(
		`INSERT OR REPLACE INTO games(session_id,path,width,height,created_at) VALUES(?,?,?,?,?)`,
		row.SessionID, row.Path, row.Width, row.Height,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// RecordTick enqueues one tick row, dropping when the buffer is full.
func (idx *Index) RecordTick(session string, e Entry) {
	if idx == nil || idx.closed.Load() {
		return
	}
	select {
	case idx.ch <- indexReq{session: session, tick: e.Tick, digest: e.Digest, intents: len(e.Intents)}:
	default:
	}
}

// Digest returns the recorded digest for one tick of one session.
func (idx *Index) Digest(session string, tick uint64) (string, bool, error) {
	var d string
	err := idx.db.QueryRow(
		`SELECT digest FROM ticks WHERE session_id = ? AND tick = ?`, session, int64(tick),
	).Scan(&d)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return d, true, nil
}

// Sessions lists registered sessions, newest first.
func (idx *Index) Sessions() ([]GameRow, error) {
	rows, err := idx.db.Query(`SELECT session_id, path, width, height FROM games ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameRow
	for rows.Next() {
		var r GameRow
		if err := rows.Scan(&r.SessionID, &r.Path, &r.Width, &r.Height); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (idx *Index) loop() {
	ctx := context.Background()
	insert, err := idx.db.Prepare(`INSERT OR REPLACE INTO ticks(session_id,tick,digest,intents) VALUES(?,?,?,?)`)
	if err != nil {
		return
	}
	defer insert.Close()

	var (
		tx          *sql.Tx
		opCount     int
		lastCommit  = time.Now()
		commitEvery = 1000
		commitWait  = 2 * time.Second
	)
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range idx.ch {
		if tx == nil {
			txx, err := idx.db.BeginTx(ctx, nil)
			if err != nil {
				time.Sleep(50 * time.Millisecond)
				continue
			}
			tx = txx
			opCount = 0
			lastCommit = time.Now()
		}
		if _, err := tx.Stmt(insert).Exec(r.session, int64(r.tick), r.digest, r.intents); err != nil {
			_ = tx.Rollback()
			tx = nil
			opCount = 0
			continue
		}
		opCount++
		if opCount >= commitEvery || time.Since(lastCommit) >= commitWait {
			commit()
		}
	}
	commit()
}
