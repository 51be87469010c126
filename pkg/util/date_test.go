package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDateOnly(t *testing.T) {
    got, ok := ParseTime("2024-10-10")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Year() != 2024 || got.Month() != time.October || got.Day() != 10 {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestAlignFromToDaily(t *testing.T) {
    from := time.Date(2024, 10, 10, 13, 37, 5, 0, time.UTC)
    to := time.Date(2024, 10, 12, 1, 2, 3, 0, time.UTC)
    af, at := AlignFromTo(from, to, "1d")
    if af.Hour() != 0 || af.Minute() != 0 || at.Hour() != 0 {
        t.Fatalf("expected day boundaries, got %v %v", af, at)
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}