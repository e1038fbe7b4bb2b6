package database

// MaxQueryIDs bounds how many ids are bound into a single IN list. SQLite
// rejects statements with more than 32766 variables.
const MaxQueryIDs = 500

// ChunkIDs splits ids into consecutive slices of at most size ids.
func ChunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = MaxQueryIDs
	}
	chunks := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// QueryInChunks runs query once per chunk of ids and concatenates the rows.
// Rows keyed by one id always come from the same query, so per-id ordering
// from the query's ORDER BY holds in the result.
func QueryInChunks[R any](ids []int64, size int, query func(chunk []int64) ([]R, error)) ([]R, error) {
	var rows []R
	for _, chunk := range ChunkIDs(ids, size) {
		part, err := query(chunk)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	return rows, nil
}
