package aur

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchSortsByPopularity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "search" {
			t.Errorf("type = %q, want search", got)
		}
		if got := r.URL.Query().Get("arg"); got != "browser" {
			t.Errorf("arg = %q, want browser", got)
		}
		if got := r.URL.Query().Get("v"); got != "5" {
			t.Errorf("v = %q, want 5", got)
		}
		fmt.Fprint(w, `{
			"resultcount": 3,
			"results": [
				{"ID": 1, "Name": "slimjet", "Version": "1.0-1", "Popularity": 0.4},
				{"ID": 2, "Name": "brave-bin", "Version": "1.61.1-1", "Popularity": 25.1},
				{"ID": 3, "Name": "librewolf-bin", "Version": "121.0-1", "Popularity": 4.2}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Search("browser")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantOrder := []string{"brave-bin", "librewolf-bin", "slimjet"}
	for i, want := range wantOrder {
		if results[i].Name != want {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, want)
		}
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultcount": 0, "results": []}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Search("no-such-package")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Search("anything"); !errors.Is(err, ErrConnection) {
		t.Errorf("error = %v, want ErrConnection", err)
	}
}

func TestInfoMissingDependencyKeysYieldEmptyLists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"resultcount": 1,
			"results": [
				{"ID": 7, "Name": "tiny-tool", "PackageBase": "tiny-tool", "Version": "0.3-1"}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Info([]string{"tiny-tool"})
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	info := results[0]
	if len(info.Depends) != 0 || len(info.MakeDepends) != 0 ||
		len(info.OptDepends) != 0 || len(info.CheckDepends) != 0 {
		t.Errorf("dependency lists should be empty, got %+v", info)
	}
}

func TestInfoChunksLargeNameSets(t *testing.T) {
	var requests int
	var argCounts []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		args := r.URL.Query()["arg[]"]
		argCounts = append(argCounts, len(args))

		// Echo one result per requested name
		fmt.Fprintf(w, `{"resultcount": %d, "results": [`, len(args))
		for i, name := range args {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"ID": %d, "Name": %q, "Version": "1.0-1"}`, i, name)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer server.Close()

	names := make([]string, 450)
	for i := range names {
		names[i] = fmt.Sprintf("pkg-%d", i)
	}

	client := NewClient(server.URL)
	results, err := client.Info(names)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}

	if requests != 3 {
		t.Errorf("got %d requests, want 3", requests)
	}
	if argCounts[0] != 200 || argCounts[1] != 200 || argCounts[2] != 50 {
		t.Errorf("chunk sizes = %v, want [200 200 50]", argCounts)
	}
	if len(results) != 450 {
		t.Errorf("got %d aggregated results, want 450", len(results))
	}
}

func TestInfoMissingNamesAreAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only one of the two requested names exists
		fmt.Fprint(w, `{
			"resultcount": 1,
			"results": [{"ID": 1, "Name": "exists", "Version": "1.0-1"}]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Info([]string{"exists", "does-not"})
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(results) != 1 || results[0].Name != "exists" {
		t.Errorf("results = %+v, want only the existing package", results)
	}
}
