package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlytics/cupping/internal/common"
)

const sampleCSV = `species,country_of_origin,flavor
Arabica,Ethiopia,8.83
Robusta,Vietnam,7.50
`

func TestFromReader(t *testing.T) {
	table, err := FromReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"species", "country_of_origin", "flavor"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Arabica", "Ethiopia", "8.83"}, table.Rows[0])
}

func TestFromReader_ShortRowsAllowed(t *testing.T) {
	csv := "a,b,c\n1,2,3\n1,2\n"

	table, err := FromReader(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[1], 2)
}

func TestFromReader_EmptyDataset(t *testing.T) {
	_, err := FromReader(strings.NewReader("a,b,c\n"))
	require.ErrorIs(t, err, common.ErrEmptyDataset)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0600))

	table, err := FromFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	table := &RawTable{Columns: []string{"species", "flavor"}}

	i, ok := table.ColumnIndex("flavor")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = table.ColumnIndex("aroma")
	assert.False(t, ok)
}

func TestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	table, err := FromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestFromURL_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
