// Package session keeps the imported rows, row edits and send results of one
// process run in an in-memory buntdb database.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"

	"github.com/quocvan1999/auto-api-pusher/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	headersKey   = "table:headers"
	rowPrefix    = "row:"
	resultPrefix = "result:"
	resultsByOk  = "results_by_ok"
)

var (
	ErrRowNotFound   = errors.New("row not found")
	ErrUnknownColumn = errors.New("column not found")
	ErrNoTableLoaded = errors.New("no table loaded")
)

type IStore interface {
	LoadTable(table *types.Table) error
	Headers() ([]string, error)
	RowCount() (int, error)
	Row(index int) (types.Row, error)
	EditRow(index int, column string, value string) error
	SaveResult(result types.SendResult) error
	Result(index int) (types.SendResult, bool, error)
	Results() ([]types.SendResult, error)
	FailedRows() ([]int, error)
	Close() error
}

type Store struct {
	db     *buntdb.DB
	Logger *logrus.Logger
}

func NewStore(logger *logrus.Logger) (*Store, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, err
	}

	err = db.CreateIndex(resultsByOk, resultPrefix+"*", buntdb.IndexJSON("ok"))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, Logger: logger}, nil
}

func rowKey(index int) string {
	return fmt.Sprintf("%s%08d", rowPrefix, index)
}

func resultKey(index int) string {
	return fmt.Sprintf("%s%08d", resultPrefix, index)
}

func indexFromKey(key string, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, prefix))
}

// LoadTable replaces any previously loaded rows and clears their results.
func (store *Store) LoadTable(table *types.Table) error {
	headers, err := json.Marshal(table.Headers)
	if err != nil {
		return err
	}

	err = store.db.Update(func(tx *buntdb.Tx) error {
		if err := deletePrefix(tx, rowPrefix); err != nil {
			return err
		}
		if err := deletePrefix(tx, resultPrefix); err != nil {
			return err
		}

		if _, _, err := tx.Set(headersKey, string(headers), nil); err != nil {
			return err
		}
		for index, row := range table.Rows {
			data, err := json.Marshal(row)
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(rowKey(index), string(data), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	store.Logger.Debugf("Session loaded with %d rows", len(table.Rows))
	return nil
}

func deletePrefix(tx *buntdb.Tx, prefix string) error {
	keys := []string{}
	err := tx.AscendKeys(prefix+"*", func(key, value string) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) Headers() ([]string, error) {
	headers := []string{}
	err := store.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(headersKey)
		if errors.Is(err, buntdb.ErrNotFound) {
			return ErrNoTableLoaded
		}
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(value), &headers)
	})
	return headers, err
}

func (store *Store) RowCount() (int, error) {
	count := 0
	err := store.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(rowPrefix+"*", func(key, value string) bool {
			count++
			return true
		})
	})
	return count, err
}

// Row returns a copy; changing it does not change the session.
func (store *Store) Row(index int) (types.Row, error) {
	row := types.Row{}
	err := store.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(rowKey(index))
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrRowNotFound, index)
		}
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(value), &row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// EditRow changes one cell before the row is sent or retried.
func (store *Store) EditRow(index int, column string, value string) error {
	headers, err := store.Headers()
	if err != nil {
		return err
	}
	known := false
	for _, header := range headers {
		if header == column {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	err = store.db.Update(func(tx *buntdb.Tx) error {
		current, err := tx.Get(rowKey(index))
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrRowNotFound, index)
		}
		if err != nil {
			return err
		}

		row := types.Row{}
		if err := json.Unmarshal([]byte(current), &row); err != nil {
			return err
		}
		row[column] = value

		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(rowKey(index), string(data), nil)
		return err
	})
	if err != nil {
		return err
	}

	store.Logger.Debugf("Row %d column %s set to %q", index, column, value)
	return nil
}

// SaveResult keeps the latest result per row, adding up attempts across sends.
func (store *Store) SaveResult(result types.SendResult) error {
	return store.db.Update(func(tx *buntdb.Tx) error {
		previous, err := tx.Get(resultKey(result.RowIndex))
		if err == nil {
			var earlier types.SendResult
			if err := json.Unmarshal([]byte(previous), &earlier); err != nil {
				return err
			}
			result.Attempts += earlier.Attempts
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}

		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(resultKey(result.RowIndex), string(data), nil)
		return err
	})
}

func (store *Store) Result(index int) (types.SendResult, bool, error) {
	result := types.SendResult{RowIndex: index}
	found := false
	err := store.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(resultKey(index))
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return json.Unmarshal([]byte(value), &result)
	})
	return result, found, err
}

// Results lists every row of the table in order, pending rows included.
func (store *Store) Results() ([]types.SendResult, error) {
	count, err := store.RowCount()
	if err != nil {
		return nil, err
	}

	results := make([]types.SendResult, count)
	for index := range results {
		results[index] = types.SendResult{RowIndex: index}
	}

	err = store.db.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.AscendKeys(resultPrefix+"*", func(key, value string) bool {
			var result types.SendResult
			if decodeErr = json.Unmarshal([]byte(value), &result); decodeErr != nil {
				return false
			}
			if result.RowIndex >= 0 && result.RowIndex < count {
				results[result.RowIndex] = result
			}
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	return results, err
}

func (store *Store) FailedRows() ([]int, error) {
	failed := []int{}
	err := store.db.View(func(tx *buntdb.Tx) error {
		var keyErr error
		err := tx.AscendEqual(resultsByOk, `{"ok":false}`, func(key, value string) bool {
			index, err := indexFromKey(key, resultPrefix)
			if err != nil {
				keyErr = err
				return false
			}
			failed = append(failed, index)
			return true
		})
		if err != nil {
			return err
		}
		return keyErr
	})
	return failed, err
}

func (store *Store) Close() error {
	return store.db.Close()
}
