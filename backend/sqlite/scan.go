package sqlite

import (
	"database/sql"
	"time"

	"github.com/mwantia/traverse/data"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*data.Entry, error) {
	var (
		entry       data.Entry
		mode        int64
		modifyTime  int64
		contentType sql.NullString
	)

	if err := row.Scan(&entry.Path, &entry.Name, &mode, &entry.Size, &modifyTime, &contentType); err != nil {
		return nil, err
	}

	entry.Mode = data.FileMode(mode)
	if modifyTime != 0 {
		entry.ModifyTime = time.Unix(0, modifyTime)
	}
	if contentType.Valid {
		entry.ContentType = data.ContentType(contentType.String)
	}

	return &entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// unixNano stores the zero time as 0.
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
