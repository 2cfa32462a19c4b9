package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// collection is a ports.Collection backed by rows of the records table.
type collection[T any] struct {
	db    *gorm.DB
	name  string
	limit int
	codec codec[T]
}

func newCollection[T any](db *gorm.DB, name string, limit int, c codec[T]) *collection[T] {
	return &collection[T]{db: db, name: name, limit: limit, codec: c}
}

func (c *collection[T]) scoped(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Where("collection = ?", c.name)
}

func (c *collection[T]) fault(op string, err error) error {
	return domain.NewStorageError(c.name, op, err)
}

// find loads the row for id. A nil row with nil error means absent.
func (c *collection[T]) find(db *gorm.DB, id string) (*record, error) {
	var row record

	err := db.Where("collection = ? AND record_id = ?", c.name, id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error here
	}

	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (c *collection[T]) decodeRow(op string, row *record) (T, error) {
	v, err := c.codec.decode(row.Payload)
	if err != nil {
		var zero T
		return zero, c.fault(op, fmt.Errorf("decoding %q: %w", row.RecordID, err))
	}

	return v, nil
}

// Get returns the record stored under id.
func (c *collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T

	row, err := c.find(c.db.WithContext(ctx), id)
	if err != nil {
		return zero, false, c.fault("get", err)
	}

	if row == nil {
		return zero, false, nil
	}

	v, err := c.decodeRow("get", row)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

// Insert stores rec under id, keeping the original position when id already exists.
func (c *collection[T]) Insert(ctx context.Context, id string, rec T) (T, bool, error) {
	var (
		prev    T
		existed bool
	)

	payload, err := c.codec.encode(rec)
	if err != nil {
		return prev, false, c.fault("insert", fmt.Errorf("encoding %q: %w", id, err))
	}

	if c.limit > 0 && len(payload) > c.limit {
		return prev, false, domain.NewRecordTooLargeError(c.name, len(payload), c.limit)
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := c.find(tx, id)
		if err != nil {
			return err
		}

		if row == nil {
			return tx.Create(&record{Collection: c.name, RecordID: id, Payload: payload}).Error
		}

		if prev, err = c.decodeRow("insert", row); err != nil {
			return err
		}

		existed = true

		return tx.Model(row).Update("payload", payload).Error
	})
	if err != nil {
		var zero T
		if domain.IsStorage(err) {
			return zero, false, err
		}

		return zero, false, c.fault("insert", err)
	}

	return prev, existed, nil
}

// Remove deletes the record under id and returns it.
func (c *collection[T]) Remove(ctx context.Context, id string) (T, bool, error) {
	var (
		removed T
		found   bool
	)

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := c.find(tx, id)
		if err != nil || row == nil {
			return err
		}

		if removed, err = c.decodeRow("remove", row); err != nil {
			return err
		}

		found = true

		return tx.Delete(row).Error
	})
	if err != nil {
		var zero T
		if domain.IsStorage(err) {
			return zero, false, err
		}

		return zero, false, c.fault("remove", err)
	}

	return removed, found, nil
}

// Values returns every record in insertion order.
func (c *collection[T]) Values(ctx context.Context) ([]T, error) {
	var rows []record

	if err := c.scoped(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, c.fault("values", err)
	}

	out := make([]T, 0, len(rows))
	for i := range rows {
		v, err := c.decodeRow("values", &rows[i])
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Len returns the number of stored records.
func (c *collection[T]) Len(ctx context.Context) (int, error) {
	var n int64

	if err := c.scoped(ctx).Model(&record{}).Count(&n).Error; err != nil {
		return 0, c.fault("count", err)
	}

	return int(n), nil
}
