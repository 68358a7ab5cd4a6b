package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/cart"
	"github.com/brndagencynl/HETT-sub001/internal/config"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/pkg/redis"
)

// ErrOfferNotFound is returned when an offer id has no row.
var ErrOfferNotFound = errors.New("offer not found")

// Statuses an offer walks through in the back office.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidOfferStatus reports whether a status is one the back office may set.
func ValidOfferStatus(status string) bool {
	switch status {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Offer is one persisted cart line / offer draft. The configuration,
// breakdown and layers columns hold the serialized cart payload; totals are
// duplicated as integer cent columns for reporting queries.
type Offer struct {
	ID            int64           `db:"id"`
	Fingerprint   string          `db:"fingerprint"`
	Configuration json.RawMessage `db:"configuration"`
	Breakdown     json.RawMessage `db:"breakdown"`
	Layers        json.RawMessage `db:"layers"`
	Summary       string          `db:"summary"`
	BaseCents     money.Cents     `db:"base_cents"`
	OptionsCents  money.Cents     `db:"options_cents"`
	GrandCents    money.Cents     `db:"grand_cents"`
	Contact       string          `db:"contact"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

// NewOffer maps a built cart payload onto a storable offer row.
func NewOffer(p cart.Payload, contact string) (Offer, error) {
	cfgJSON, err := json.Marshal(p.Configuration)
	if err != nil {
		return Offer{}, fmt.Errorf("marshal configuration: %w", err)
	}
	bdJSON, err := json.Marshal(p.Breakdown)
	if err != nil {
		return Offer{}, fmt.Errorf("marshal breakdown: %w", err)
	}
	layersJSON, err := json.Marshal(p.Layers)
	if err != nil {
		return Offer{}, fmt.Errorf("marshal layers: %w", err)
	}

	return Offer{
		Fingerprint:   p.Fingerprint,
		Configuration: cfgJSON,
		Breakdown:     bdJSON,
		Layers:        layersJSON,
		Summary:       p.Summary,
		BaseCents:     p.Breakdown.Base,
		OptionsCents:  p.Breakdown.OptionsTotal,
		GrandCents:    p.Breakdown.GrandTotal,
		Contact:       contact,
		Status:        StatusNew,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func NewPostgresStorage(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) SaveOffer(ctx context.Context, offer Offer) (int64, error) {
	const query = `
        INSERT INTO offers (
            fingerprint, configuration, breakdown, layers, summary,
            base_cents, options_cents, grand_cents, contact, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `

	var offerID int64
	err := s.db.QueryRowContext(ctx, query,
		offer.Fingerprint,
		offer.Configuration,
		offer.Breakdown,
		offer.Layers,
		offer.Summary,
		offer.BaseCents,
		offer.OptionsCents,
		offer.GrandCents,
		offer.Contact,
		offer.Status,
		offer.CreatedAt,
	).Scan(&offerID)
	if err != nil {
		return 0, fmt.Errorf("failed to save offer: %w", err)
	}

	return offerID, nil
}

func (s *PostgresStorage) GetOffer(ctx context.Context, offerID int64) (*Offer, error) {
	cacheKey := fmt.Sprintf("offer:%d", offerID)

	// Try Redis first.
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
		var offer Offer
		if err := json.Unmarshal(cached, &offer); err == nil {
			return &offer, nil
		}
	}

	const query = `
        SELECT id, fingerprint, configuration, breakdown, layers, summary,
               base_cents, options_cents, grand_cents, contact, status, created_at
        FROM offers
        WHERE id = $1
    `

	var offer Offer
	err := s.db.GetContext(ctx, &offer, query, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("offer %d: %w", offerID, ErrOfferNotFound)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	if data, err := json.Marshal(offer); err == nil {
		_ = s.redis.Set(ctx, cacheKey, data, time.Hour)
	}

	return &offer, nil
}

// FindOfferByFingerprint returns the newest offer with a fingerprint, used
// to dedup identical configurations submitted twice.
func (s *PostgresStorage) FindOfferByFingerprint(ctx context.Context, fingerprint string) (*Offer, error) {
	const query = `
        SELECT id, fingerprint, configuration, breakdown, layers, summary,
               base_cents, options_cents, grand_cents, contact, status, created_at
        FROM offers
        WHERE fingerprint = $1
        ORDER BY created_at DESC
        LIMIT 1
    `

	var offer Offer
	err := s.db.GetContext(ctx, &offer, query, fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fingerprint %s: %w", fingerprint, ErrOfferNotFound)
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return &offer, nil
}

func (s *PostgresStorage) ListOffers(ctx context.Context) ([]Offer, error) {
	const query = `
        SELECT id, fingerprint, configuration, breakdown, layers, summary,
               base_cents, options_cents, grand_cents, contact, status, created_at
        FROM offers
        ORDER BY created_at DESC
    `

	var offers []Offer
	if err := s.db.SelectContext(ctx, &offers, query); err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (s *PostgresStorage) UpdateOfferStatus(ctx context.Context, offerID int64, status string) error {
	const query = `UPDATE offers SET status = $2 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, offerID, status)
	if err != nil {
		return fmt.Errorf("failed to update offer status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("offer %d: %w", offerID, ErrOfferNotFound)
	}

	// Drop the cached copy so the next read sees the new status.
	_ = s.redis.Del(ctx, fmt.Sprintf("offer:%d", offerID))

	return nil
}
