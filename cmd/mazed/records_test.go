package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClauseEmpty(t *testing.T) {
	clause, args := SolveRecordFilters{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestWhereClausePlayer(t *testing.T) {
	filters := &SolveRecordFilters{}
	require.NoError(t, RecordsForPlayer("alice")(filters))

	clause, args := filters.WhereClause()
	assert.Equal(t, "username = @username", clause)
	assert.Equal(t, "alice", *args["username"].(*string))
}

func TestWhereClauseCombined(t *testing.T) {
	filters := &SolveRecordFilters{}
	require.NoError(t, RecordsForPlayer("bob")(filters))
	require.NoError(t, RecordsForDimensions(21, 31)(filters))
	require.NoError(t, RecordsForDifficulty(true)(filters))
	require.NoError(t, RecordsForStrategy("label")(filters))

	clause, args := filters.WhereClause()
	assert.Equal(t,
		`username = @username and "rows" = @rows and cols = @cols`+
			" and difficult = @difficult and strategy = @strategy",
		clause)
	assert.Equal(t, 21, *args["rows"].(*int))
	assert.Equal(t, 31, *args["cols"].(*int))
	assert.Equal(t, true, *args["difficult"].(*bool))
	assert.Equal(t, "label", *args["strategy"].(*string))
}

func TestRecordOptionsFromQuery(t *testing.T) {
	options, err := recordOptionsFromQuery(map[string][]string{
		"username":  {"alice"},
		"rows":      {"21"},
		"cols":      {"31"},
		"difficult": {"true"},
	})
	require.NoError(t, err)
	assert.Len(t, options, 3)
}

func TestRecordOptionsFromQueryRejectsBadInput(t *testing.T) {
	_, err := recordOptionsFromQuery(map[string][]string{"rows": {"21"}})
	assert.Error(t, err, "rows without cols is not a usable filter")

	_, err = recordOptionsFromQuery(map[string][]string{
		"rows": {"x"}, "cols": {"31"},
	})
	assert.Error(t, err)

	_, err = recordOptionsFromQuery(map[string][]string{"difficult": {"maybe"}})
	assert.Error(t, err)
}
