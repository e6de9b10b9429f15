package store

import (
	"database/sql"
	"fmt"
	"time"
)

// storedDueDateLayout is the due_date column format. Seconds are always
// zero; they are kept so that databases written by earlier releases (which
// stored full timestamps) read back unchanged and sort consistently.
const storedDueDateLayout = "2006-01-02 15:04:05"

// readableDueDateLayouts are tried in order when scanning due_date.
var readableDueDateLayouts = []string{
	storedDueDateLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// marshalDueDate converts a due date to its column value.
// A nil due date is stored as NULL.
func marshalDueDate(due *time.Time) sql.NullString {
	if due == nil {
		return sql.NullString{}
	}
	return sql.NullString{
		String: due.Truncate(time.Minute).Format(storedDueDateLayout),
		Valid:  true,
	}
}

// unmarshalDueDate parses a due_date column value.
// NULL yields nil. Values are zone-free wall-clock readings, returned in UTC.
func unmarshalDueDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	for _, layout := range readableDueDateLayouts {
		if t, err := time.ParseInLocation(layout, v.String, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unmarshal due date: unrecognized value %q", v.String)
}
