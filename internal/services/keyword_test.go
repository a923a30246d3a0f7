package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestImportCSV(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewKeywordService(db)
	ctx := context.Background()

	csv := "keyword,position,search_volume,target_url\n" +
		"panadería valencia,3,880,https://example.com/\n" +
		"pan artesano,12,320,\n" +
		",5,100,\n" + // empty keyword, skipped
		"horno de leña,,,\n"
	res, err := svc.ImportCSV(ctx, client.ID, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 3 {
		t.Fatalf("imported = %d, want 3", res.Imported)
	}
	if res.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", res.Skipped)
	}

	kws, err := svc.List(ctx, &client.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kws) != 3 {
		t.Fatalf("stored keywords = %d, want 3", len(kws))
	}
	for _, k := range kws {
		if k.Keyword == "panadería valencia" {
			if k.Position == nil || *k.Position != 3 {
				t.Fatalf("position not parsed: %+v", k)
			}
			if k.SearchVolume == nil || *k.SearchVolume != 880 {
				t.Fatalf("search volume not parsed: %+v", k)
			}
		}
	}
}

func TestImportCSVWindows1252(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewKeywordService(db)

	// Excel-on-Windows export: Windows-1252 bytes, no BOM.
	utf8CSV := "keyword,position\npanadería señorial,4\n"
	enc := charmap.Windows1252.NewEncoder()
	raw, err := enc.Bytes([]byte(utf8CSV))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	res, err := svc.ImportCSV(context.Background(), client.ID, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 1 {
		t.Fatalf("imported = %d, want 1", res.Imported)
	}
	kws, err := svc.List(context.Background(), &client.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kws) != 1 || kws[0].Keyword != "panadería señorial" {
		t.Fatalf("keyword not decoded to UTF-8: %+v", kws)
	}
}

func TestImportCSVMissingKeywordColumn(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewKeywordService(db)

	if _, err := svc.ImportCSV(context.Background(), client.ID, strings.NewReader("term,pos\nfoo,1\n")); err == nil {
		t.Fatal("expected error for missing keyword column")
	}
}

func TestKeywordStats(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewKeywordService(db)
	ctx := context.Background()

	csv := "keyword,position\n" +
		"a,3\n" + // top 10
		"b,8\n" + // top 10
		"c,15\n" +
		"d,\n"
	if _, err := svc.ImportCSV(ctx, client.ID, strings.NewReader(csv)); err != nil {
		t.Fatalf("import: %v", err)
	}
	// one keyword moved up
	kws, _ := svc.List(ctx, &client.ID)
	for i := range kws {
		if kws[i].Keyword == "a" {
			prev := 9
			kws[i].PreviousPosition = &prev
			if _, err := svc.Update(ctx, &kws[i]); err != nil {
				t.Fatalf("update: %v", err)
			}
		}
	}

	stats, err := svc.Stats(ctx, client.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("total = %d, want 4", stats.Total)
	}
	if stats.Top10 != 2 {
		t.Fatalf("top10 = %d, want 2", stats.Top10)
	}
	if stats.Improved != 1 {
		t.Fatalf("improved = %d, want 1", stats.Improved)
	}
}
