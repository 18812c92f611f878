package dataset

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Brand", "Symptoms?", "Ingredient 1"},
		{"Remote", "Yes", "Water"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadRemoteRetriesTransientErrors(t *testing.T) {
	body := workbookBytes(t)
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	records, err := Load(srv.URL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if calls < 3 {
		t.Errorf("expected retries, server saw %d calls", calls)
	}
	if len(records) != 1 || records[0].Brand != "Remote" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadRemoteClientErrorIsPermanent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Load(srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls != 1 {
		t.Errorf("404 must not be retried, server saw %d calls", calls)
	}
}
