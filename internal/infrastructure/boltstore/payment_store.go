// Package boltstore persists payment records in an embedded BoltDB file, so
// charge history survives service restarts without an external database.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/velozshop/veloz/internal/domain/payment"
)

const bucketName = "payments"

type PaymentStore struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and ensures the payments bucket
// exists.
func Open(path string) (*PaymentStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PaymentStore{db: db}, nil
}

// Close releases the database file lock.
func (s *PaymentStore) Close() error {
	return s.db.Close()
}

func (s *PaymentStore) Insert(ctx context.Context, p *payment.Payment) error {
	_ = ctx
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		p.ID = int64(seq)

		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return b.Put(itob(p.ID), data)
	})
}

func (s *PaymentStore) Get(ctx context.Context, id int64) (*payment.Payment, error) {
	_ = ctx
	var p payment.Payment

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		v := b.Get(itob(id))
		if v == nil {
			return payment.ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *PaymentStore) List(ctx context.Context) ([]*payment.Payment, error) {
	_ = ctx
	out := []*payment.Payment{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var p payment.Payment
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			out = append(out, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// itob produces big-endian keys so bolt iterates payments in ID order.
func itob(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}
