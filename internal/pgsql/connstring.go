// Package pgsql handles the key/value connection strings published on the
// PostgreSQL relation.
package pgsql

import (
	"fmt"
	"net/url"
	"strings"
)

// ConnectionString holds the parsed fields of a libpq style connection string
// such as "host=10.0.0.1 port=5432 dbname=nextcloud user=nc password=secret".
type ConnectionString struct {
	raw string

	Host     string
	Port     string
	DBName   string
	User     string
	Password string
}

// ParseConnectionString parses a space separated key=value connection string.
// Values may be single-quoted to contain spaces.
func ParseConnectionString(raw string) (*ConnectionString, error) {
	cs := &ConnectionString{raw: raw}

	fields, err := splitFields(raw)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found {
			return nil, fmt.Errorf("malformed connection string field %q", field)
		}

		value = strings.Trim(value, "'")

		switch key {
		case "host":
			cs.Host = value
		case "port":
			cs.Port = value
		case "dbname":
			cs.DBName = value
		case "user":
			cs.User = value
		case "password":
			cs.Password = value
		}
	}

	if cs.Host == "" || cs.DBName == "" {
		return nil, fmt.Errorf("connection string %q is missing host or dbname", raw)
	}

	return cs, nil
}

// String returns the original connection string.
func (c *ConnectionString) String() string {
	return c.raw
}

// URI returns the postgresql:// URI form of the connection string.
func (c *ConnectionString) URI() string {
	host := c.Host
	if c.Port != "" {
		host += ":" + c.Port
	}

	uri := url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + c.DBName,
	}

	if c.User != "" {
		if c.Password != "" {
			uri.User = url.UserPassword(c.User, c.Password)
		} else {
			uri.User = url.User(c.User)
		}
	}

	return uri.String()
}

// splitFields splits on spaces while honoring single-quoted values.
func splitFields(raw string) ([]string, error) {
	var fields []string
	var current strings.Builder

	quoted := false

	for _, r := range raw {
		switch {
		case r == '\'':
			quoted = !quoted
			current.WriteRune(r)
		case r == ' ' && !quoted:
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if quoted {
		return nil, fmt.Errorf("unterminated quote in connection string %q", raw)
	}

	if current.Len() > 0 {
		fields = append(fields, current.String())
	}

	return fields, nil
}
