package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type SolveRecord struct {
	SessionId  string  `json:"session_id"`
	Username   *string `json:"username"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	Difficult  bool    `json:"difficult"`
	Strategy   string  `json:"strategy"`
	PathLength int     `json:"path_length"`
	ElapsedMs  float64 `json:"elapsed_ms"`
}

type SolveRecordFilters struct {
	username   *string
	rows, cols *int
	difficult  *bool
	strategy   *string
}

func (f SolveRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.rows != nil && f.cols != nil {
		args["rows"] = f.rows
		args["cols"] = f.cols
		whereClauses = append(
			whereClauses,
			`"rows" = @rows`,
			"cols = @cols",
		)
	}
	if f.difficult != nil {
		args["difficult"] = f.difficult
		whereClauses = append(whereClauses, "difficult = @difficult")
	}
	if f.strategy != nil {
		args["strategy"] = f.strategy
		whereClauses = append(whereClauses, "strategy = @strategy")
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type SolveRecordsOption = func(*SolveRecordFilters) error

func RecordsForPlayer(username string) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.username = &username
		return nil
	}
}

func RecordsForDimensions(rows, cols int) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.rows = &rows
		f.cols = &cols
		return nil
	}
}

func RecordsForDifficulty(difficult bool) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.difficult = &difficult
		return nil
	}
}

func RecordsForStrategy(strategy string) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.strategy = &strategy
		return nil
	}
}

func getSolveRecords(
	ctx context.Context, options ...SolveRecordsOption,
) ([]SolveRecord, error) {
	filters := &SolveRecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		session_id
		, username
		, "rows"
		, cols
		, difficult
		, strategy
		, path_length
		, elapsed_ms
	from solve_record
		left outer join player using (player_id)`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " where " + whereClause
	}

	sql += " order by elapsed_ms"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveRecord])
}

func recordOptionsFromQuery(query map[string][]string) ([]SolveRecordsOption, error) {
	options := []SolveRecordsOption{}
	get := func(key string) (string, bool) {
		vs, ok := query[key]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	if username, ok := get("username"); ok {
		options = append(options, RecordsForPlayer(username))
	}
	if rowsStr, ok := get("rows"); ok {
		colsStr, ok := get("cols")
		if !ok {
			return nil, strconv.ErrSyntax
		}
		rows, err := strconv.Atoi(rowsStr)
		if err != nil {
			return nil, err
		}
		cols, err := strconv.Atoi(colsStr)
		if err != nil {
			return nil, err
		}
		options = append(options, RecordsForDimensions(rows, cols))
	}
	if difficultStr, ok := get("difficult"); ok {
		difficult, err := strconv.ParseBool(difficultStr)
		if err != nil {
			return nil, err
		}
		options = append(options, RecordsForDifficulty(difficult))
	}
	if strategy, ok := get("strategy"); ok {
		options = append(options, RecordsForStrategy(strategy))
	}
	return options, nil
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	options, err := recordOptionsFromQuery(r.URL.Query())
	if err != nil {
		log.Debug(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	records, err := getSolveRecords(r.Context(), options...)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getSolveRecords(
		r.Context(), RecordsForPlayer(claims.Username),
	)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
