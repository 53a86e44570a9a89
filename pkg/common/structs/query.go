package structs

// QueryResult is the normalized tabular result of one query-protocol request
type QueryResult struct {
	Columns  []string                 `json:"columns"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"rowCount"`
}

// First returns the first row, or nil when the result is empty
func (q *QueryResult) First() map[string]interface{} {
	if q == nil || len(q.Rows) == 0 {
		return nil
	}
	return q.Rows[0]
}
