package recordstore_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/spms/core/record"
	. "github.com/trezcool/spms/storage/recordstore"
	"github.com/trezcool/spms/tests"
)

func TestNewClient_validatesArguments(t *testing.T) {
	validate, _ := testutil.NewValidator()
	conf := testutil.NewConfig("")
	_, err := NewClient(conf, testutil.NewLogger(conf), validate)
	assert.Error(t, err)

	conf = testutil.NewConfig("not a url")
	_, err = NewClient(conf, testutil.NewLogger(conf), validate)
	assert.Error(t, err)

	conf = testutil.NewConfig("http://localhost:1")
	_, err = NewClient(conf, nil, validate)
	assert.Error(t, err)
}

func TestResource_List(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes records in server order", func(t *testing.T) {
		client, store := testutil.NewClient(t)
		store.Seed("students", testutil.Student(2, "Bob", 100), testutil.Student(1, "Amy", 200))

		got, err := client.Students().List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].RegistrationID)
		assert.Equal(t, null.StringFrom("Amy"), got[1].Name)

		calls := store.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodGet, calls[0].Method)
		assert.Equal(t, "/students/", calls[0].Path)
	})

	t.Run("non-array body is an empty list", func(t *testing.T) {
		client, store := testutil.NewClient(t)
		store.SetRawList("batches", `{"items": []}`)

		got, err := client.Batches().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("drops records without a key", func(t *testing.T) {
		client, store := testutil.NewClient(t)
		store.SetRawList("mocks", `[
			{"mock_id": "M1", "registration_id": 3, "status": "pass"},
			{"mock_id": "", "registration_id": 4},
			{"mock_id": "M3"},
			{"mock_id": "M4", "registration_id": "four"},
			{"mock_id": "M5", "registration_id": 5}
		]`)

		got, err := client.Mocks().List(ctx)
		require.NoError(t, err)
		var ids []string
		for _, m := range got {
			ids = append(ids, m.MockID)
		}
		assert.Equal(t, []string{"M1", "M5"}, ids)
	})

	t.Run("surfaces the server detail", func(t *testing.T) {
		client, store := testutil.NewClient(t)
		store.Fail("contests", http.StatusInternalServerError, "database is down")

		_, err := client.Contests().List(ctx)
		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, "database is down", Detail(err, "Failed to load contests"))
	})
}

func TestResource_CRUD(t *testing.T) {
	ctx := context.Background()
	client, store := testutil.NewClient(t)
	assignments := client.Assignments()

	a := testutil.Assignment(7, 2, 55, "submitted")
	require.NoError(t, assignments.Create(ctx, a))

	got, err := assignments.Get(ctx, "7", "2")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.Marks = null.Float64From(91.5)
	a.Status = null.StringFrom("graded")
	require.NoError(t, assignments.Update(ctx, a.Key(), a))

	got, err = assignments.Get(ctx, a.Key()...)
	require.NoError(t, err)
	assert.Equal(t, null.Float64From(91.5), got.Marks)
	assert.Equal(t, null.StringFrom("graded"), got.Status)

	require.NoError(t, assignments.Delete(ctx, "7", "2"))
	_, err = assignments.Get(ctx, "7", "2")
	assert.ErrorIs(t, err, ErrNotFound)

	var paths []string
	for _, c := range store.Calls() {
		paths = append(paths, c.Method+" "+c.Path)
	}
	assert.Equal(t, []string{
		"POST /assignments/",
		"GET /assignments/7/2",
		"PATCH /assignments/7/2",
		"GET /assignments/7/2",
		"DELETE /assignments/7/2",
		"GET /assignments/7/2",
	}, paths)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(store.CallsWith(http.MethodPatch)[0].Body, &body))
	assert.Equal(t, 91.5, body["marks"])
	assert.Equal(t, 7.0, body["registration_id"], "the full record is sent")
}

func TestResource_Create_conflict(t *testing.T) {
	ctx := context.Background()
	client, store := testutil.NewClient(t)
	store.Seed("batches", record.Batch{BatchID: "B1"})

	err := client.Batches().Create(ctx, record.Batch{BatchID: "B1"})
	require.Error(t, err)
	assert.Equal(t, "batch already exists", Detail(err, "Operation failed"))
	assert.Len(t, store.Rows("batches"), 1)
}

func TestResource_Delete_escapesKey(t *testing.T) {
	ctx := context.Background()
	client, store := testutil.NewClient(t)
	store.Seed("contests", testutil.Contest("weekly 1", 3, 80, 1))

	require.NoError(t, client.Contests().Delete(ctx, "weekly 1", "3"))
	assert.Empty(t, store.Rows("contests"))
}

func TestResource_emptyKey(t *testing.T) {
	client, store := testutil.NewClient(t)
	assert.Error(t, client.Students().Delete(context.Background()))
	assert.Error(t, client.Students().Update(context.Background(), nil, record.Student{}))
	assert.Empty(t, store.Calls())
}

func TestClient_Placement(t *testing.T) {
	ctx := context.Background()
	client, store := testutil.NewClient(t)
	store.SetPlacement(42, `{"registration_id": 42, "is_ready": true, "score": 88}`)

	st, err := client.Placement(ctx, 42)
	require.NoError(t, err)
	assert.True(t, st.Ready())
	assert.Equal(t, "42", st.RegistrationID("0"))
	assert.Len(t, st.Fields, 3)

	_, err = client.Placement(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Not Found", Detail(err, "Failed to fetch placement status"))
}

func TestClient_cancelledContext(t *testing.T) {
	client, _ := testutil.NewClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Students().List(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to load students", Detail(err, "Failed to load students"))
}
