package db

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
)

// MaxBindParams is the PostgreSQL limit on bound parameters per statement.
const MaxBindParams = 65535

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// LoadOptions controls how LoadBatch splits and commits rows.
type LoadOptions struct {
	// MaxRows caps the rows in one INSERT statement.
	MaxRows int
	// Returning names a column to read back from every inserted row,
	// usually "id". Empty means nothing is read back.
	Returning string
	// Atomic runs all chunks in one transaction instead of one each.
	Atomic bool
}

// LoadResult reports what LoadBatch committed.
type LoadResult struct {
	Rows   int64
	Chunks int
	IDs    []int64
}

// MaxRowsFor returns the largest chunk size whose parameters fit in a single
// statement for table.
func MaxRowsFor(table model.Table) int {
	return MaxBindParams / len(table.Columns)
}

// CheckChunkSize rejects a chunk size that is non-positive or would exceed
// the bound parameter limit for table.
func CheckChunkSize(table model.Table, maxRows int) error {
	if maxRows <= 0 {
		return seederr.Configf("%s: max rows per chunk must be positive, got %d", table.Name, maxRows)
	}
	if maxRows*len(table.Columns) > MaxBindParams {
		return seederr.Configf("%s: %d rows x %d columns = %d parameters exceeds limit %d (max %d rows)",
			table.Name, maxRows, len(table.Columns), maxRows*len(table.Columns), MaxBindParams, MaxRowsFor(table))
	}
	return nil
}

// Chunk splits rows into consecutive slices of at most size rows. The
// result has ceil(len(rows)/size) entries and shares rows' backing array.
func Chunk[T any](rows []T, size int) [][]T {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end:end])
	}
	return chunks
}

// ChunkCount returns ceil(n/size).
func ChunkCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// LoadBatch inserts rows into table with one multi-row INSERT per chunk.
//
// By default every chunk runs in its own transaction and chunks are committed
// in order: when chunk k fails it is rolled back, chunks before it stay
// committed, and no later chunk is attempted. With opts.Atomic all chunks
// share one transaction. The returned result counts committed rows only and
// is non-nil even on error.
func LoadBatch(ctx context.Context, db TxBeginner, table model.Table, rows [][]any, opts LoadOptions) (*LoadResult, error) {
	res := &LoadResult{}
	if err := CheckChunkSize(table, opts.MaxRows); err != nil {
		return res, err
	}
	for i, r := range rows {
		if len(r) != len(table.Columns) {
			return res, fmt.Errorf("%s: row %d has %d values, want %d", table.Name, i, len(r), len(table.Columns))
		}
	}

	chunks := Chunk(rows, opts.MaxRows)
	if len(chunks) == 0 {
		return res, nil
	}

	if opts.Atomic {
		var ids []int64
		err := WithTx(ctx, db, func(tx pgx.Tx) error {
			for k, chunk := range chunks {
				chunkIDs, err := insertChunk(ctx, tx, table, chunk, opts.Returning)
				if err != nil {
					return fmt.Errorf("%s: chunk %d/%d: %w", table.Name, k+1, len(chunks), err)
				}
				ids = append(ids, chunkIDs...)
			}
			return nil
		})
		if err != nil {
			return res, seederr.Classify(err)
		}
		res.Rows = int64(len(rows))
		res.Chunks = len(chunks)
		res.IDs = ids
		return res, nil
	}

	for k, chunk := range chunks {
		var chunkIDs []int64
		err := WithTx(ctx, db, func(tx pgx.Tx) error {
			var err error
			chunkIDs, err = insertChunk(ctx, tx, table, chunk, opts.Returning)
			return err
		})
		if err != nil {
			return res, seederr.Classify(fmt.Errorf("%s: chunk %d/%d: %w", table.Name, k+1, len(chunks), err))
		}
		res.Rows += int64(len(chunk))
		res.Chunks++
		res.IDs = append(res.IDs, chunkIDs...)
	}
	return res, nil
}

// insertChunk issues one multi-row INSERT for chunk on tx.
func insertChunk(ctx context.Context, tx pgx.Tx, table model.Table, chunk [][]any, returning string) ([]int64, error) {
	q := qb.Insert(table.Name).Columns(table.Columns...)
	for _, r := range chunk {
		q = q.Values(r...)
	}
	if returning != "" {
		q = q.Suffix("RETURNING " + returning)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if returning == "" {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() != int64(len(chunk)) {
			return nil, fmt.Errorf("inserted %d rows, want %d", tag.RowsAffected(), len(chunk))
		}
		return nil, nil
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	if len(ids) != len(chunk) {
		return nil, fmt.Errorf("returned %d ids, want %d", len(ids), len(chunk))
	}
	return ids, nil
}
