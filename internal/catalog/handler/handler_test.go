package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/config"
)

func multipartBody(t *testing.T, internalCSV, vendorCSV string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("internal", "V105_OITM.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(internalCSV)); err != nil {
		t.Fatal(err)
	}

	fw, err = w.CreateFormFile("vendor", "V105_VPL.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(vendorCSV)); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestMatchPricesHandler(t *testing.T) {
	internal := "Item No.\nA-RED-M-1\nA-RED-M-2\nZ-NOPE-XX\n"
	vendor := "Vendor Style,Color,Size,Variable,Price\nA,RED,M,1,10.00\nA,RED,M,,8.00\n"
	body, contentType := multipartBody(t, internal, vendor)

	req := httptest.NewRequest(http.MethodPost, "/match/prices", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	MatchPrices(config.Config{}, zerolog.Nop())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp priceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.TotalSKUs != 3 || resp.Matched != 2 || resp.Removed != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Result.Matched[0].Price != 10.00 || resp.Result.Matched[1].Price != 8.00 {
		t.Fatalf("matched = %+v", resp.Result.Matched)
	}
}

func TestMatchPricesHandlerMissingColumn(t *testing.T) {
	internal := "Item No.\nA-RED-M-1\n"
	vendor := "Vendor Style,Color,Size\nA,RED,M\n" // no Price
	body, contentType := multipartBody(t, internal, vendor)

	req := httptest.NewRequest(http.MethodPost, "/match/prices", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	MatchPrices(config.Config{}, zerolog.Nop())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Price")) {
		t.Fatalf("diagnostic should name the missing column: %s", rec.Body.String())
	}
}

func TestFindDiscontinuedHandler(t *testing.T) {
	// doubled OITM header: the handler defaults to header row 2 in this mode
	internal := "ItemCode\nItemCode\nB-BLUE-S\nB-RED-S\n"
	vendor := "Vendor Style,Style Name,Color,Size\nB,Classic Tee - DISCONTINUED,BLUE,S\nB,Classic Tee,RED,S\n"
	body, contentType := multipartBody(t, internal, vendor)

	req := httptest.NewRequest(http.MethodPost, "/match/discontinued", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	FindDiscontinued(config.Config{}, zerolog.Nop())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp model.DiscontinuationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.TotalInternal != 2 || resp.DiscontinuedVendor != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if len(resp.Flagged) != 1 || resp.Flagged[0] != "B-BLUE-S" {
		t.Fatalf("flagged = %v", resp.Flagged)
	}
}
