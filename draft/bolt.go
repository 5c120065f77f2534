package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	bolt "go.etcd.io/bbolt"
)

const bucketDrafts = "drafts"

// BoltCache keeps values in a bbolt file, so drafts survive a restart.
// Values go through JSON; numbers come back as float64.
type BoltCache[S any] struct {
	db *bolt.DB
}

func OpenBoltCache[S any](path string) (*BoltCache[S], error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open draft db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDrafts))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize draft db: %w", err)
	}
	return &BoltCache[S]{db: db}, nil
}

func (c *BoltCache[S]) Close() error {
	return c.db.Close()
}

func (c *BoltCache[S]) Set(ctx context.Context, key string, val S) error {
	raw, err := sonic.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Put([]byte(key), raw)
	})
}

func (c *BoltCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	var val S
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		// the slice is only valid inside the transaction
		if v := tx.Bucket([]byte(bucketDrafts)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return val, false, err
	}
	if err := sonic.Unmarshal(raw, &val); err != nil {
		return val, false, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return val, true, nil
}

func (c *BoltCache[S]) Del(ctx context.Context, key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Delete([]byte(key))
	})
}
