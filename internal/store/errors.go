package store

import "fmt"

// ErrQuery is wrapped by every error a report or catalogue read returns, so
// callers can tell a failed query apart from one that matched no rows.
var ErrQuery = fmt.Errorf("query failed")
