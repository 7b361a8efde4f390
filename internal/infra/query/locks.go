package query

import "context"

const advisoryXactLock = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

// AdvisoryXactLock blocks until the transaction holds the lock for key; it
// is released at commit or rollback.
func (q *Queries) AdvisoryXactLock(ctx context.Context, db DBTX, key string) error {
	_, err := db.Exec(ctx, advisoryXactLock, key)
	return err
}
