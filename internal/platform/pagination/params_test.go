package pagination

import (
	"errors"
	"net/http"
	"testing"
)

func newRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	return req
}

func TestFromRequestDefaults(t *testing.T) {
	params, err := FromRequest(newRequest(t, "/"), Options{})
	if err != nil {
		t.Fatalf("FromRequest returned error: %v", err)
	}
	if params.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size %d got %d", DefaultPageSize, params.PageSize)
	}
	if params.PageToken != "" {
		t.Fatalf("expected empty page token got %q", params.PageToken)
	}
}

func TestFromRequestPageSize(t *testing.T) {
	opts := Options{DefaultPageSize: 25, MaxPageSize: 40}

	params, err := FromRequest(newRequest(t, "/?pageSize=30"), opts)
	if err != nil {
		t.Fatalf("FromRequest returned error: %v", err)
	}
	if params.PageSize != 30 {
		t.Fatalf("expected page size 30 got %d", params.PageSize)
	}

	params, err = FromRequest(newRequest(t, "/?pageSize=400"), opts)
	if err != nil {
		t.Fatalf("FromRequest returned error: %v", err)
	}
	if params.PageSize != opts.MaxPageSize {
		t.Fatalf("expected page size clamped to %d got %d", opts.MaxPageSize, params.PageSize)
	}
}

func TestFromRequestInvalidPageSize(t *testing.T) {
	if _, err := FromRequest(newRequest(t, "/?pageSize=abc"), Options{}); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize got %v", err)
	}
	if _, err := FromRequest(newRequest(t, "/?pageSize=0"), Options{}); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize for zero got %v", err)
	}
}

func TestFromRequestPageToken(t *testing.T) {
	token, err := OffsetToken(40)
	if err != nil {
		t.Fatalf("OffsetToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	params, err := FromRequest(newRequest(t, "/?pageToken="+token), Options{})
	if err != nil {
		t.Fatalf("FromRequest returned error: %v", err)
	}
	if params.PageToken != token {
		t.Fatalf("expected page token %q got %q", token, params.PageToken)
	}
	if params.Cursor.Offset != 40 {
		t.Fatalf("expected cursor offset 40 got %d", params.Cursor.Offset)
	}
}

func TestFromRequestInvalidPageToken(t *testing.T) {
	if _, err := FromRequest(newRequest(t, "/?pageToken=!!!invalid!!!"), Options{}); !errors.Is(err, ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken got %v", err)
	}
}

func TestEncodeDecodeToken(t *testing.T) {
	token, err := EncodeToken(Cursor{Offset: 120})
	if err != nil {
		t.Fatalf("EncodeToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	decoded, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken returned error: %v", err)
	}
	if decoded.Offset != 120 {
		t.Fatalf("expected cursor offset 120 got %d", decoded.Offset)
	}

	emptyToken, err := EncodeToken(Cursor{})
	if err != nil {
		t.Fatalf("EncodeToken for empty cursor returned error: %v", err)
	}
	if emptyToken != "" {
		t.Fatalf("expected empty token got %q", emptyToken)
	}
}

func TestDecodeTokenRejectsNegativeOffset(t *testing.T) {
	token, err := EncodeToken(Cursor{Offset: -5})
	if err != nil {
		t.Fatalf("EncodeToken returned error: %v", err)
	}
	if _, err := DecodeToken(token); !errors.Is(err, ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken got %v", err)
	}
}

func TestMust(t *testing.T) {
	ensured := Must(Params{})
	if ensured.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size %d got %d", DefaultPageSize, ensured.PageSize)
	}

	ensured = Must(Params{PageSize: 15})
	if ensured.PageSize != 15 {
		t.Fatalf("expected page size 15 got %d", ensured.PageSize)
	}
}
