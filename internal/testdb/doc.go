// Package testdb provides utilities for PostgreSQL integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database without cleaning up after
// themselves:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        docs := postgres.NewDocumentStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The connection string is read from LIBRARY_TEST_DB_URL, falling back to
// DATABASE_URL. Tests are skipped when neither is set.
package testdb
