package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// Troubleshoot turns a connection or check failure into the advice lines
// the check command prints. PostgreSQL server errors carry SQLSTATE
// codes, and the common ones get a targeted first line; everything else
// falls back to the generic checklist.
func Troubleshoot(scheme model.Scheme, err error) []string {
	var lines []string

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		lines = append(lines, fmt.Sprintf("PostgreSQL reported SQLSTATE %s: %s", pgErr.Code, pgErr.Message))
		if hint := pgHint(pgErr.Code); hint != "" {
			lines = append(lines, hint)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Troubleshooting steps:")
	lines = append(lines, "  1. Check that DATABASE_URL is correct in the .env file")

	switch scheme {
	case model.SchemeSQLite:
		lines = append(lines,
			"  2. Check that the database file's directory exists and is writable",
			"  3. Check that no other process holds a lock on the database file",
		)
	default:
		lines = append(lines,
			"  2. Verify the database server is running (check your provider's dashboard)",
			"  3. Check that your IP address is allowed to connect",
			"  4. Ensure you have an internet connection",
			"  5. Try logging into the provider's dashboard to verify the database exists",
		)
	}
	return lines
}

// pgHint maps frequent SQLSTATE codes to one-line advice.
func pgHint(code string) string {
	switch code {
	case "28P01", "28000":
		return "The username or password in DATABASE_URL was rejected."
	case "3D000":
		return "The database named in DATABASE_URL does not exist on the server."
	case "57P03":
		return "The server is starting up; retry in a few seconds."
	case "53300":
		return "The server has too many connections; close idle clients or raise the limit."
	default:
		return ""
	}
}
