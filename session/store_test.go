package session

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvan1999/auto-api-pusher/types"
)

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(logrus.New())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	err = store.LoadTable(&types.Table{
		Headers: []string{"Name", "Age"},
		Rows: []types.Row{
			{"Name": "Ann", "Age": "30"},
			{"Name": "Bob", "Age": "41"},
			{"Name": "Cid", "Age": "x"},
		},
	})
	require.NoError(t, err)
	return store
}

func TestStore_NoTable(t *testing.T) {
	store, err := NewStore(logrus.New())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Headers()
	assert.ErrorIs(t, err, ErrNoTableLoaded)

	count, err := store.RowCount()
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_LoadTableAndRead(t *testing.T) {
	store := newLoadedStore(t)

	headers, err := store.Headers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, headers)

	count, err := store.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	row, err := store.Row(1)
	require.NoError(t, err)
	assert.Equal(t, types.Row{"Name": "Bob", "Age": "41"}, row)

	_, err = store.Row(7)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestStore_RowIsACopy(t *testing.T) {
	store := newLoadedStore(t)

	row, err := store.Row(0)
	require.NoError(t, err)
	row["Name"] = "changed"

	again, err := store.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again["Name"])
}

func TestStore_EditRow(t *testing.T) {
	store := newLoadedStore(t)

	require.NoError(t, store.EditRow(2, "Age", "52"))

	row, err := store.Row(2)
	require.NoError(t, err)
	assert.Equal(t, types.Row{"Name": "Cid", "Age": "52"}, row)

	assert.ErrorIs(t, store.EditRow(2, "Email", "x"), ErrUnknownColumn)
	assert.ErrorIs(t, store.EditRow(9, "Age", "1"), ErrRowNotFound)
}

func TestStore_Results(t *testing.T) {
	store := newLoadedStore(t)

	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 0, Ok: true, StatusCode: 200, Attempts: 1}))
	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 2, Ok: false, StatusCode: 500, Attempts: 1}))

	results, err := store.Results()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, types.SendStatusOk, results[0].Status())
	assert.Equal(t, types.SendStatusPending, results[1].Status())
	assert.Equal(t, 1, results[1].RowIndex)
	assert.Equal(t, types.SendStatusFailed, results[2].Status())

	failed, err := store.FailedRows()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, failed)

	result, found, err := store.Result(1)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, result.RowIndex)
}

func TestStore_SaveResultAccumulatesAttempts(t *testing.T) {
	store := newLoadedStore(t)

	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 1, Ok: false, Error: "timeout", Attempts: 2}))
	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 1, Ok: true, StatusCode: 201, Attempts: 1}))

	result, found, err := store.Result(1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, result.Ok)
	assert.Equal(t, 3, result.Attempts)
	assert.Empty(t, result.Error)

	failed, err := store.FailedRows()
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestStore_FailedRowsInOrder(t *testing.T) {
	store := newLoadedStore(t)

	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 2, Attempts: 1}))
	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 0, Attempts: 1}))
	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 1, Ok: true, Attempts: 1}))

	failed, err := store.FailedRows()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, failed)
}

func TestStore_LoadTableClearsResults(t *testing.T) {
	store := newLoadedStore(t)
	require.NoError(t, store.SaveResult(types.SendResult{RowIndex: 0, Attempts: 1}))

	require.NoError(t, store.LoadTable(&types.Table{Headers: []string{"X"}, Rows: []types.Row{{"X": "1"}}}))

	failed, err := store.FailedRows()
	require.NoError(t, err)
	assert.Empty(t, failed)

	count, err := store.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
