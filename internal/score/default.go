package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"git.lost.host/meutraa/tapbeat/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultStore struct {
	Path string
	db   *sql.DB
}

// compactCounts stores counts as [miss, bad, good, perfect]
func compactCounts(c Counts) []int {
	return []int{c.Miss, c.Bad, c.Good, c.Perfect}
}

func uncompactCounts(c []int) (Counts, error) {
	if len(c) != 4 {
		return Counts{}, fmt.Errorf("expected 4 counts, got %v", len(c))
	}
	return Counts{Miss: c[0], Bad: c[1], Good: c[2], Perfect: c[3]}, nil
}

func (s *DefaultStore) Init() error {
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists scores 
	  (
		  id integer not null primary key, 
		  sum text,
		  name text,
		  coefficient integer,
		  counts bytearray,
		  score real
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return fmt.Errorf("unable to create scores table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func HashChart(c *game.Chart) string {
	sum := sha256.Sum256([]byte(c.Text))
	return base64.StdEncoding.EncodeToString(sum[:])
}

var errNotInitialised = errors.New("score store is not initialised")

func (s *DefaultStore) Save(c *game.Chart, r Result) error {
	if nil == s.db {
		return errNotInitialised
	}
	data, err := json.Marshal(compactCounts(r.Counts))
	if nil != err {
		return fmt.Errorf("unable to marshal counts: %w", err)
	}
	_, err = s.db.Exec("insert into scores(sum, name, coefficient, counts, score) values(?, ?, ?, ?, ?)",
		HashChart(c), c.Name, r.Coefficient, data, r.Score)
	if nil != err {
		return fmt.Errorf("unable to save score: %w", err)
	}
	return nil
}

func (s *DefaultStore) Load(c *game.Chart) ([]Result, error) {
	if nil == s.db {
		return nil, errNotInitialised
	}
	results := []Result{}
	rows, err := s.db.Query("select sum, coefficient, counts, score from scores where sum = ? order by score desc", HashChart(c))
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r Result
		var counts []byte
		if err := rows.Scan(&r.Sum, &r.Coefficient, &counts, &r.Score); nil != err {
			return nil, fmt.Errorf("unable to read score: %w", err)
		}
		var cs []int
		if err := json.Unmarshal(counts, &cs); nil != err {
			continue
		}
		if r.Counts, err = uncompactCounts(cs); nil != err {
			continue
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
