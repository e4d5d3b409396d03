package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// PayloadInfo describes one cached payload without its body.
type PayloadInfo struct {
	Kind       string
	Key        string
	FetchedAt  time.Time
	Size       int64 // uncompressed bytes
	StoredSize int64 // compressed bytes
}

// PutPayload stores a raw payload. Uses INSERT OR REPLACE so a refetch
// overwrites the previous copy.
func (db *DB) PutPayload(kind, key string, body []byte, fetchedAt time.Time) error {
	compressed := db.enc.EncodeAll(body, nil)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO payloads(kind, key, fetched_at, size, body)
		VALUES (?, ?, ?, ?, ?)`,
		kind, key, fetchedAt.Unix(), len(body), compressed,
	)
	if err != nil {
		return fmt.Errorf("store %s/%s: %w", kind, key, err)
	}
	return nil
}

// GetPayload returns a cached payload and when it was fetched. maxAge <= 0
// accepts any age. Missing or stale payloads return ErrNotCached.
func (db *DB) GetPayload(kind, key string, maxAge time.Duration, now time.Time) ([]byte, time.Time, error) {
	var (
		fetched    int64
		compressed []byte
	)
	err := db.conn.QueryRow(`
		SELECT fetched_at, body FROM payloads WHERE kind = ? AND key = ?`, kind, key).
		Scan(&fetched, &compressed)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNotCached
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load %s/%s: %w", kind, key, err)
	}
	at := time.Unix(fetched, 0)
	if maxAge > 0 && now.Sub(at) > maxAge {
		return nil, at, ErrNotCached
	}
	body, err := db.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, at, fmt.Errorf("decompress %s/%s: %w", kind, key, err)
	}
	return body, at, nil
}

// ListPayloads returns every cached payload ordered by kind then key.
func (db *DB) ListPayloads() ([]PayloadInfo, error) {
	rows, err := db.conn.Query(`
		SELECT kind, key, fetched_at, size, length(body)
		FROM payloads ORDER BY kind, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PayloadInfo
	for rows.Next() {
		var (
			p       PayloadInfo
			fetched int64
		)
		if err := rows.Scan(&p.Kind, &p.Key, &fetched, &p.Size, &p.StoredSize); err != nil {
			return nil, err
		}
		p.FetchedAt = time.Unix(fetched, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePayloads removes cached payloads of a kind, or all payloads when kind
// is empty, and returns how many were removed.
func (db *DB) DeletePayloads(kind string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if kind == "" {
		res, err = db.conn.Exec(`DELETE FROM payloads`)
	} else {
		res, err = db.conn.Exec(`DELETE FROM payloads WHERE kind = ?`, kind)
	}
	if err != nil {
		return 0, fmt.Errorf("delete payloads: %w", err)
	}
	return res.RowsAffected()
}
