package database

import (
	"net/url"
)

// ConstructDatabaseURL points baseURL at databaseName, replacing any database
// already named in the path. Query parameters are kept and sslmode=disable is
// added when no sslmode is given. An unparsable base URL is returned unchanged
// so pgx reports the error.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	u.Path = "/" + databaseName
	u.RawPath = ""

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}
