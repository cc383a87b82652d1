package store

import (
	"context"
	"database/sql"
	errs "errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

var (
	ErrNoChange = errs.New("no change")
	ErrNoRun    = errs.New("journal has no run started")
)

// DB wraps gorm.DB for the journal and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// IsPostgres reports whether dsn addresses a Postgres server. Anything else
// is treated as a SQLite path.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the journal database. Postgres schemas are owned by the
// migrations; SQLite databases are migrated in place.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), DisableAutomaticPing: true}
	var dial gorm.Dialector
	if IsPostgres(dsn) {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if IsPostgres(dsn) {
		sdb.SetConnMaxLifetime(30 * time.Minute)
		sdb.SetMaxOpenConns(10)
		sdb.SetMaxIdleConns(5)
	} else {
		sdb.SetMaxOpenConns(1)
	}
	if err := sdb.PingContext(ctx); err != nil {
		_ = sdb.Close()
		return nil, errors.Wrap(err, "ping journal")
	}
	d := &DB{gorm: gdb, sql: sdb}
	if !IsPostgres(dsn) {
		if err := AutoMigrate(gdb); err != nil {
			_ = sdb.Close()
			return nil, err
		}
	}
	return d, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Run is one career from Start to exit.
type Run struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seed      string    `gorm:"size:128"`
	Player    string    `gorm:"size:128;not null"`
	Channel   string    `gorm:"size:128;not null"`
	StartedAt time.Time
}

type VideoRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;index"`
	VideoID     string    `gorm:"size:64;index"`
	Day         int
	Title       string
	Genre       string `gorm:"size:32"`
	Quality     int
	VisualTag   string `gorm:"size:32"`
	PublishedAt time.Time
	Comments    []CommentRecord `gorm:"foreignKey:VideoRecordID"`
}

type CommentRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoRecordID uuid.UUID `gorm:"type:uuid;index"`
	User          string    `gorm:"size:64"`
	Text          string
	Sentiment     string `gorm:"size:16"`
}

type DaySnapshot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;index"`
	Day         int
	Subscribers float64
	MoneyMicros int64
	Reputation  int
}

type EventRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;index"`
	Day         int
	Title       string
	Choice      string `gorm:"size:8"`
	Message     string
	MoneyChange int
	SubChange   int
	RepChange   int
}

func (VideoRecord) TableName() string   { return "videos" }
func (CommentRecord) TableName() string { return "comments" }
func (DaySnapshot) TableName() string   { return "day_snapshots" }
func (EventRecord) TableName() string   { return "event_outcomes" }

// AutoMigrate creates the journal tables on SQLite.
func AutoMigrate(db *gorm.DB) error {
	return wrap(db.AutoMigrate(&Run{}, &VideoRecord{}, &CommentRecord{}, &DaySnapshot{}, &EventRecord{}), "auto migrate")
}

// Journal appends career milestones for one run. It is safe for concurrent use.
type Journal struct {
	db   *DB
	seed string
	log  *log.Logger
	now  func() time.Time

	mu  sync.Mutex
	run uuid.UUID
}

func NewJournal(db *DB, seed string, logger *log.Logger) *Journal {
	if logger == nil {
		logger = log.Default()
	}
	return &Journal{db: db, seed: seed, log: logger.WithPrefix("store"), now: time.Now}
}

// RunID is the current run, or uuid.Nil before RunStarted.
func (j *Journal) RunID() uuid.UUID {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.run
}

func (j *Journal) current() (uuid.UUID, error) {
	id := j.RunID()
	if id == uuid.Nil {
		return uuid.Nil, ErrNoRun
	}
	return id, nil
}

func (j *Journal) RunStarted(ctx context.Context, player, channel string) error {
	r := Run{ID: uuid.New(), Seed: j.seed, Player: player, Channel: channel, StartedAt: j.now()}
	if err := j.db.gorm.WithContext(ctx).Create(&r).Error; err != nil {
		return wrap(err, "insert run")
	}
	j.mu.Lock()
	j.run = r.ID
	j.mu.Unlock()
	j.log.Info("run started", "run", r.ID, "channel", channel)
	return nil
}

// VideoPublished stores the video and its comments in one transaction.
func (j *Journal) VideoPublished(ctx context.Context, day int, v engine.Video) error {
	runID, err := j.current()
	if err != nil {
		return err
	}
	rec := VideoRecord{
		ID:          uuid.New(),
		RunID:       runID,
		VideoID:     v.ID,
		Day:         day,
		Title:       v.Title,
		Genre:       string(v.Genre),
		Quality:     v.Quality,
		VisualTag:   v.VisualTag,
		PublishedAt: v.CreatedAt,
	}
	for _, c := range v.Comments {
		rec.Comments = append(rec.Comments, CommentRecord{
			ID:            uuid.New(),
			VideoRecordID: rec.ID,
			User:          c.User,
			Text:          c.Text,
			Sentiment:     string(c.Sentiment),
		})
	}
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		return wrap(tx.Create(&rec).Error, "insert video")
	})
}

func (j *Journal) DayAdvanced(ctx context.Context, snap engine.SubSnapshot, money engine.Money, reputation int) error {
	runID, err := j.current()
	if err != nil {
		return err
	}
	rec := DaySnapshot{
		ID:          uuid.New(),
		RunID:       runID,
		Day:         snap.Day,
		Subscribers: snap.Count,
		MoneyMicros: int64(money),
		Reputation:  reputation,
	}
	return wrap(j.db.gorm.WithContext(ctx).Create(&rec).Error, "insert day snapshot")
}

func (j *Journal) EventResolved(ctx context.Context, day int, ev engine.GameEvent, choice engine.ChoiceID, o engine.EventOutcome) error {
	runID, err := j.current()
	if err != nil {
		return err
	}
	rec := EventRecord{
		ID:          uuid.New(),
		RunID:       runID,
		Day:         day,
		Title:       ev.Title,
		Choice:      string(choice),
		Message:     o.Message,
		MoneyChange: o.MoneyChange,
		SubChange:   o.SubChange,
		RepChange:   o.RepChange,
	}
	return wrap(j.db.gorm.WithContext(ctx).Create(&rec).Error, "insert event outcome")
}

// Summary counts what the current run has recorded.
type Summary struct {
	Videos   int64
	Comments int64
	Days     int64
	Events   int64
	BestDay  int
	MaxSubs  float64
}

func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	runID, err := j.current()
	if err != nil {
		return Summary{}, err
	}
	db := j.db.gorm.WithContext(ctx)
	var s Summary
	if err := db.Model(&VideoRecord{}).Where("run_id = ?", runID).Count(&s.Videos).Error; err != nil {
		return Summary{}, wrap(err, "count videos")
	}
	err = db.Model(&CommentRecord{}).
		Joins("JOIN videos ON videos.id = comments.video_record_id").
		Where("videos.run_id = ?", runID).
		Count(&s.Comments).Error
	if err != nil {
		return Summary{}, wrap(err, "count comments")
	}
	if err := db.Model(&DaySnapshot{}).Where("run_id = ?", runID).Count(&s.Days).Error; err != nil {
		return Summary{}, wrap(err, "count days")
	}
	if err := db.Model(&EventRecord{}).Where("run_id = ?", runID).Count(&s.Events).Error; err != nil {
		return Summary{}, wrap(err, "count events")
	}
	var best DaySnapshot
	err = db.Where("run_id = ?", runID).Order("subscribers DESC, day ASC").Limit(1).Find(&best).Error
	if err != nil {
		return Summary{}, wrap(err, "best day")
	}
	s.BestDay, s.MaxSubs = best.Day, best.Subscribers
	return s, nil
}

// Videos lists the run's published videos, oldest first, with comments.
func (j *Journal) Videos(ctx context.Context) ([]VideoRecord, error) {
	runID, err := j.current()
	if err != nil {
		return nil, err
	}
	var out []VideoRecord
	err = j.db.gorm.WithContext(ctx).
		Preload("Comments").
		Where("run_id = ?", runID).
		Order("day ASC, published_at ASC").
		Find(&out).Error
	return out, wrap(err, "list videos")
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
