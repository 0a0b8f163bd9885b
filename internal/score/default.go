package score

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	db *sql.DB
}

// NewRecord stamps a finished session with a fresh id.
func NewRecord(mode string, score, bestStreak, level int, duration time.Duration) Record {
	return Record{
		ID:         uuid.New(),
		Mode:       mode,
		Score:      score,
		BestStreak: bestStreak,
		Level:      level,
		Played:     time.Now().UTC(),
		Duration:   duration,
	}
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id text not null primary key,
		  mode text not null,
		  score integer not null,
		  best_streak integer not null,
		  level integer not null,
		  played integer not null,
		  duration integer not null
	  );
	create index if not exists sessions_mode_score on sessions (mode, score);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create score tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

var errClosed = errors.New("score database is not open")

func (s *DefaultScorer) Save(r Record) error {
	if nil == s.db {
		return errClosed
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.Exec("insert into sessions(id, mode, score, best_streak, level, played, duration) values(?, ?, ?, ?, ?, ?, ?)",
		r.ID.String(), r.Mode, r.Score, r.BestStreak, r.Level, r.Played.UnixNano(), int64(r.Duration))
	if nil != err {
		return fmt.Errorf("unable to save score: %w", err)
	}
	return nil
}

func (s *DefaultScorer) query(q string, args ...any) []Record {
	records := []Record{}
	if nil == s.db {
		return records
	}
	rows, err := s.db.Query(q, args...)
	if nil != err {
		log.Println("unable to load scores", err)
		return records
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var played, duration int64
		var r Record
		if err := rows.Scan(&id, &r.Mode, &r.Score, &r.BestStreak, &r.Level, &played, &duration); nil != err {
			log.Println("unable to read score", err)
			continue
		}
		if r.ID, err = uuid.Parse(id); nil != err {
			log.Println("invalid session id", id)
			continue
		}
		r.Played = time.Unix(0, played).UTC()
		r.Duration = time.Duration(duration)
		records = append(records, r)
	}
	return records
}

const columns = "id, mode, score, best_streak, level, played, duration"

func (s *DefaultScorer) Best(mode string) (Record, bool) {
	rs := s.query("select "+columns+" from sessions where mode = ? order by score desc, played asc limit 1", mode)
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[0], true
}

func (s *DefaultScorer) Recent(mode string, n int) []Record {
	return s.query("select "+columns+" from sessions where mode = ? order by played desc limit ?", mode, n)
}

func (s *DefaultScorer) Summary(mode string) Summary {
	var sum Summary
	if nil == s.db {
		return sum
	}
	var mean sql.NullFloat64
	var high, streak, total sql.NullInt64
	err := s.db.QueryRow("select count(*), max(score), avg(score), max(best_streak), sum(duration) from sessions where mode = ?", mode).
		Scan(&sum.Sessions, &high, &mean, &streak, &total)
	if nil != err {
		log.Println("unable to summarise scores", err)
		return sum
	}
	sum.HighScore = int(high.Int64)
	sum.MeanScore = mean.Float64
	sum.BestStreak = int(streak.Int64)
	sum.TotalTime = time.Duration(total.Int64)
	return sum
}
