package symbol

import (
    "errors"
    "testing"
)

func TestNormalize_SplitsTrimsUppercasesDedupes(t *testing.T) {
    got, err := Normalize(" aapl; MSFT ,aapl,,; googl ")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := []string{"AAPL", "MSFT", "GOOGL"}
    if len(got) != len(want) {
        t.Fatalf("want %v, got %v", want, got)
    }
    for i := range want {
        if got[i] != want[i] {
            t.Fatalf("want %v, got %v", want, got)
        }
    }
}

func TestNormalize_OrderIsFirstAppearance(t *testing.T) {
    got, err := Normalize("MSFT;AAPL;MSFT")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(got) != 2 || got[0] != "MSFT" || got[1] != "AAPL" {
        t.Fatalf("unexpected order: %v", got)
    }
}

func TestNormalize_EmptyInputsFail(t *testing.T) {
    for _, raw := range []string{"", "  ", ";;,", " ; , ; "} {
        if _, err := Normalize(raw); !errors.Is(err, ErrNoSymbols) {
            t.Fatalf("raw %q: want ErrNoSymbols, got %v", raw, err)
        }
    }
}

func TestKey_PreservesOrder(t *testing.T) {
    a := Key([]string{"AAPL", "MSFT"})
    b := Key([]string{"MSFT", "AAPL"})
    if a == b {
        t.Fatalf("reordered sets must produce distinct keys, both %q", a)
    }
    if a != "AAPL,MSFT" {
        t.Fatalf("unexpected key: %q", a)
    }
}
