package sqlsource

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"revreview/domain/report"

	"github.com/go-logfmt/logfmt"
	"github.com/lib/pq"
)

// Dialect is a database/sql driver name the report knows how to query.
type Dialect string

const (
	DialectSQLServer Dialect = "sqlserver"
	DialectPostgres  Dialect = "postgres"
	DialectOracle    Dialect = "godror"
)

// Dialects lists the supported drivers
func Dialects() []Dialect {
	return []Dialect{DialectSQLServer, DialectPostgres, DialectOracle}
}

// ParseDialect validates a driver name
func ParseDialect(name string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Dialects() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

// QuoteIdentifier quotes a column alias for the dialect.
func (d Dialect) QuoteIdentifier(name string) string {
	switch d {
	case DialectSQLServer:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	case DialectPostgres:
		return pq.QuoteIdentifier(name)
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

type projection struct {
	expr  string
	alias string
}

// reviewProjection maps review table columns to report display names.
var reviewProjection = []projection{
	{"user_name", report.ColumnUser},
	{"duedate", report.ColumnDueDate},
	{"duedatetime", report.ColumnDueDateTime},
	{"orgname", report.ColumnOrganization},
	{"org_type", report.ColumnOrgType},
	{"pername", report.ColumnPerson},
	{"peremail", report.ColumnPersonEmail},
	{"subject", report.ColumnSubject},
	{"actnote", report.ColumnNote},
}

var reviewOrder = []string{"user_name", "duedatetime", "orgname", "pername", "type"}

// ReviewQuery renders the fixed review query for the dialect.
func ReviewQuery(d Dialect) string {
	var b strings.Builder
	b.WriteString("SELECT\n")
	for i, p := range reviewProjection {
		b.WriteString("  ")
		b.WriteString(p.expr)
		b.WriteString(" AS ")
		b.WriteString(d.QuoteIdentifier(p.alias))
		if i < len(reviewProjection)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("FROM review\nORDER BY ")
	b.WriteString(strings.Join(reviewOrder, ", "))
	return b.String()
}

// ConnParams are the discrete connection settings used when no URL is given.
type ConnParams struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// BuildDSN composes a driver-specific data source name.
func BuildDSN(d Dialect, p ConnParams) (string, error) {
	if p.Host == "" {
		return "", fmt.Errorf("database host is required")
	}
	switch d {
	case DialectSQLServer:
		host, instance, _ := strings.Cut(p.Host, `\`)
		u := &url.URL{Scheme: "sqlserver", Host: hostPort(host, p.Port)}
		if instance != "" {
			u.Path = "/" + instance
		}
		if p.User != "" {
			u.User = url.UserPassword(p.User, p.Password)
		}
		q := url.Values{}
		if p.Database != "" {
			q.Set("database", p.Database)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	case DialectPostgres:
		u := &url.URL{Scheme: "postgres", Host: hostPort(p.Host, p.Port), Path: "/" + p.Database}
		if p.User != "" {
			u.User = url.UserPassword(p.User, p.Password)
		}
		if p.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
		}
		return u.String(), nil
	case DialectOracle:
		dsn, err := logfmt.MarshalKeyvals(
			"user", p.User,
			"password", p.Password,
			"connectString", hostPort(p.Host, p.Port)+"/"+p.Database,
		)
		if err != nil {
			return "", fmt.Errorf("encoding oracle dsn: %w", err)
		}
		return string(dsn), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", string(d))
	}
}

func hostPort(host string, port int) string {
	if port <= 0 {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
