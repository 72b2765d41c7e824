package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Text принимает любое скалярное значение из БД (text, int, uuid, timestamp)
// и хранит его строкой. NULL превращается в пустую строку.
type Text string

func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case []byte:
		*t = Text(v)
	case int64:
		*t = Text(strconv.FormatInt(v, 10))
	case float64:
		*t = Text(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(v))
	case time.Time:
		*t = Text(v.Format(time.RFC3339))
	default:
		*t = Text(fmt.Sprint(v))
	}
	return nil
}

func (t Text) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

func (Text) GormDataType() string { return "text" }

func (t Text) String() string { return string(t) }

// Ptr: пустой текст даёт nil, в JSON это null
func (t Text) Ptr() *string {
	if strings.TrimSpace(string(t)) == "" {
		return nil
	}
	s := string(t)
	return &s
}

// RowID: ключ строки, тип колонки которого заранее не известен.
// Целые числа уходят в JSON числом, остальное строкой, пустой ключ как null.
type RowID string

func (id RowID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// форматы, которые встречаются в pin_expires_at / created_at
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp читается из timestamp-колонки или из текста. Нераспознанный текст
// остаётся в Raw, Valid=false
type Timestamp struct {
	Time  time.Time
	Raw   string
	Valid bool
}

func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Raw: s, Valid: true}
		}
	}
	return Timestamp{Raw: s}
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts = Timestamp{}
	case time.Time:
		*ts = Timestamp{Time: v, Raw: v.Format(time.RFC3339Nano), Valid: true}
	case string:
		*ts = ParseTimestamp(v)
	case []byte:
		*ts = ParseTimestamp(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Timestamp", src)
	}
	return nil
}

func (ts Timestamp) Value() (driver.Value, error) {
	if ts.Valid {
		return ts.Time.Format(time.RFC3339Nano), nil
	}
	if ts.Raw != "" {
		return ts.Raw, nil
	}
	return nil, nil
}

func (Timestamp) GormDataType() string { return "text" }

// NULL или пусто
func (ts Timestamp) IsZero() bool { return !ts.Valid && ts.Raw == "" }

// Before: время валидно и строго раньше t
func (ts Timestamp) Before(t time.Time) bool {
	return ts.Valid && ts.Time.Before(t)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case ts.Valid:
		return json.Marshal(ts.Time.Format(time.RFC3339Nano))
	case ts.Raw != "":
		return json.Marshal(ts.Raw)
	default:
		return []byte("null"), nil
	}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = ParseTimestamp(s)
	return nil
}
