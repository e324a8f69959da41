package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-rewriter/internal/config"
	"alfredoptarigan/cv-rewriter/internal/models"
	"alfredoptarigan/cv-rewriter/internal/services"
	"alfredoptarigan/cv-rewriter/internal/testutil"
)

type mockGemini struct {
	calls  int
	apiKey string
	output string
	err    error
}

func (m *mockGemini) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	m.calls++
	m.apiKey = apiKey
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

const (
	testMaxFileSize = 1 << 20
	testMaxPixels   = 200 * 200
)

var testFill = color.RGBA{R: 0, G: 0, B: 0, A: 0xff}

func newTestApp(gemini services.GeminiService) *fiber.App {
	uploadService := services.NewUploadService(testMaxFileSize)
	pipeline := services.NewCVPipeline(
		services.NewPDFParserService(),
		gemini,
		services.NewDocumentAssembler(config.DocumentConfig{Title: "Curriculum Vitae", FileName: "CV.docx", StripMarkdown: true}),
	)
	photoService := services.NewPhotoService(config.PhotoConfig{
		MaxBorder:    50,
		PreviewWidth: 300,
		FillColor:    testFill,
		MaxPixels:    testMaxPixels,
	})

	return NewApp(Handlers{
		CV:       NewCVHandler(uploadService, pipeline, "CV.docx"),
		Photo:    NewPhotoHandler(uploadService, photoService),
		Language: NewLanguageHandler(),
	}, testMaxFileSize)
}

func doMultipart(t *testing.T, app *fiber.App, path string, headers, fields map[string]string, files ...testutil.FormFile) *http.Response {
	t.Helper()

	body, contentType := testutil.MultipartBody(fields, files...)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test(%s) error: %v", path, err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func cvFile(content []byte) testutil.FormFile {
	return testutil.FormFile{Field: "cv", Filename: "cv.pdf", Content: content}
}

func TestCVRewrite_EndToEnd(t *testing.T) {
	t.Parallel()

	gemini := &mockGemini{output: "Jane Doe\nSenior Engineer\n\nSkills: X, Y"}
	app := newTestApp(gemini)

	resp := doMultipart(t, app, "/api/v1/cv/rewrite",
		nil,
		map[string]string{"api_key": "user-key", "language": "English"},
		cvFile(testutil.BuildPDF("Jane Doe\nEngineer")),
	)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentType); got != services.DocxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); got != `attachment; filename="CV.docx"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Error("missing X-Request-ID header")
	}
	if gemini.calls != 1 || gemini.apiKey != "user-key" {
		t.Errorf("gemini calls = %d, key = %q", gemini.calls, gemini.apiKey)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	paragraphs, err := testutil.ReadDocxParagraphs(data)
	if err != nil {
		t.Fatalf("response is not a docx: %v", err)
	}

	want := []testutil.DocxParagraph{
		{Style: "Title", Text: "Curriculum Vitae"},
		{Text: "Jane Doe"},
		{Text: "Senior Engineer"},
		{Text: "Skills: X, Y"},
	}
	if !reflect.DeepEqual(paragraphs, want) {
		t.Errorf("paragraphs = %+v, want %+v", paragraphs, want)
	}
}

func TestCVRewrite_APIKeyHeader(t *testing.T) {
	t.Parallel()

	gemini := &mockGemini{output: "Hallo"}
	resp := doMultipart(t, newTestApp(gemini), "/api/v1/cv/rewrite",
		map[string]string{"X-Api-Key": "header-key"},
		map[string]string{"language": "de"},
		cvFile(testutil.BuildPDF("Jane Doe")),
	)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if gemini.apiKey != "header-key" {
		t.Errorf("apiKey = %q, want header-key", gemini.apiKey)
	}
}

func TestCVRewrite_Errors(t *testing.T) {
	t.Parallel()

	validPDF := testutil.BuildPDF("Jane Doe")

	tests := []struct {
		name      string
		fields    map[string]string
		files     []testutil.FormFile
		gemini    *mockGemini
		wantCode  int
		wantKind  models.ResultKind
		wantCalls int
	}{
		{
			name:     "missing api key",
			fields:   map[string]string{"language": "English"},
			files:    []testutil.FormFile{cvFile(validPDF)},
			gemini:   &mockGemini{output: "x"},
			wantCode: fiber.StatusUnauthorized,
			wantKind: models.KindCredentialError,
		},
		{
			name:     "unsupported language",
			fields:   map[string]string{"api_key": "k", "language": "Klingon"},
			files:    []testutil.FormFile{cvFile(validPDF)},
			gemini:   &mockGemini{output: "x"},
			wantCode: fiber.StatusBadRequest,
			wantKind: models.KindInputError,
		},
		{
			name:     "missing file",
			fields:   map[string]string{"api_key": "k"},
			gemini:   &mockGemini{output: "x"},
			wantCode: fiber.StatusBadRequest,
			wantKind: models.KindInputError,
		},
		{
			name:     "wrong extension",
			fields:   map[string]string{"api_key": "k"},
			files:    []testutil.FormFile{{Field: "cv", Filename: "cv.txt", Content: []byte("hello")}},
			gemini:   &mockGemini{output: "x"},
			wantCode: fiber.StatusBadRequest,
			wantKind: models.KindInputError,
		},
		{
			name:     "corrupt pdf",
			fields:   map[string]string{"api_key": "k"},
			files:    []testutil.FormFile{cvFile(bytes.Repeat([]byte("not a pdf "), 20))},
			gemini:   &mockGemini{output: "x"},
			wantCode: fiber.StatusUnprocessableEntity,
			wantKind: models.KindExtractionError,
		},
		{
			name:      "rewrite call fails",
			fields:    map[string]string{"api_key": "k"},
			files:     []testutil.FormFile{cvFile(validPDF)},
			gemini:    &mockGemini{err: errors.New("API key not valid")},
			wantCode:  fiber.StatusBadGateway,
			wantKind:  models.KindCallError,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := doMultipart(t, newTestApp(tt.gemini), "/api/v1/cv/rewrite", nil, tt.fields, tt.files...)
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if ct := resp.Header.Get(fiber.HeaderContentType); ct == services.DocxContentType {
				t.Fatal("error response served a document")
			}

			body := decodeError(t, resp)
			if body.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", body.Kind, tt.wantKind)
			}
			if body.Error == "" || body.Code != tt.wantCode {
				t.Errorf("body = %+v", body)
			}
			if tt.gemini.calls != tt.wantCalls {
				t.Errorf("gemini calls = %d, want %d", tt.gemini.calls, tt.wantCalls)
			}
		})
	}
}

func TestCVRewritePreview(t *testing.T) {
	t.Parallel()

	gemini := &mockGemini{output: "Jane Doe\n\n**Senior Engineer**"}
	resp := doMultipart(t, newTestApp(gemini), "/api/v1/cv/rewrite/preview",
		nil,
		map[string]string{"api_key": "k", "language": "fr"},
		cvFile(testutil.BuildPDF("Jane Doe")),
	)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.RewritePreviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Language != "French" || body.Title != "Curriculum Vitae" {
		t.Errorf("body = %+v", body)
	}
	if want := []string{"Jane Doe", "Senior Engineer"}; !reflect.DeepEqual(body.Paragraphs, want) {
		t.Errorf("paragraphs = %q, want %q", body.Paragraphs, want)
	}
	if body.Text != gemini.output {
		t.Errorf("text = %q, want raw model output", body.Text)
	}
}

func TestPhotoBorder(t *testing.T) {
	t.Parallel()

	app := newTestApp(&mockGemini{})
	photo := testutil.FormFile{
		Field:    "photo",
		Filename: "me.png",
		Content:  testutil.PNGBytes(testutil.SolidImage(100, 100, color.RGBA{R: 200, G: 100, B: 50, A: 255})),
	}

	resp := doMultipart(t, app, "/api/v1/photo/border", nil, map[string]string{"width": "10"}, photo)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentType); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Fatalf("size = %dx%d, want 120x120", b.Dx(), b.Dy())
	}

	for _, p := range [][2]int{{0, 0}, {119, 119}, {9, 60}, {60, 110}} {
		r, g, b, a := img.At(p[0], p[1]).RGBA()
		if r != 0 || g != 0 || b != 0 || a != 0xffff {
			t.Errorf("margin pixel %v = (%d,%d,%d,%d), want opaque black", p, r, g, b, a)
		}
	}
	r, _, _, _ := img.At(10, 10).RGBA()
	if r>>8 != 200 {
		t.Errorf("inner pixel red = %d, want 200", r>>8)
	}
}

func TestPhotoBorder_Preview(t *testing.T) {
	t.Parallel()

	photo := testutil.FormFile{
		Field:    "photo",
		Filename: "me.png",
		Content:  testutil.PNGBytes(testutil.SolidImage(100, 50, color.White)),
	}

	resp := doMultipart(t, newTestApp(&mockGemini{}), "/api/v1/photo/border?preview=true", nil, map[string]string{"width": "0"}, photo)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Image-Width") != "100" || resp.Header.Get("X-Image-Height") != "50" {
		t.Errorf("bordered size headers = %s x %s", resp.Header.Get("X-Image-Width"), resp.Header.Get("X-Image-Height"))
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("preview size = %dx%d, want 300x150", b.Dx(), b.Dy())
	}
}

func TestPhotoBorder_Errors(t *testing.T) {
	t.Parallel()

	photo := testutil.FormFile{Field: "photo", Filename: "me.png", Content: testutil.PNGBytes(testutil.SolidImage(4, 4, color.White))}

	tests := []struct {
		name     string
		width    string
		files    []testutil.FormFile
		wantCode int
	}{
		{name: "width too large", width: "51", files: []testutil.FormFile{photo}, wantCode: fiber.StatusBadRequest},
		{name: "negative width", width: "-1", files: []testutil.FormFile{photo}, wantCode: fiber.StatusBadRequest},
		{name: "non numeric width", width: "ten", files: []testutil.FormFile{photo}, wantCode: fiber.StatusBadRequest},
		{name: "missing photo", width: "5", wantCode: fiber.StatusBadRequest},
		{
			name:     "not an image",
			width:    "5",
			files:    []testutil.FormFile{{Field: "photo", Filename: "me.png", Content: []byte("nope")}},
			wantCode: fiber.StatusUnprocessableEntity,
		},
		{
			name:  "too many pixels",
			width: "5",
			files: []testutil.FormFile{{
				Field:    "photo",
				Filename: "big.png",
				Content:  testutil.PNGBytes(testutil.SolidImage(300, 300, color.White)),
			}},
			wantCode: fiber.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := doMultipart(t, newTestApp(&mockGemini{}), "/api/v1/photo/border", nil, map[string]string{"width": tt.width}, tt.files...)
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
		})
	}
}

func TestCORSExposesResponseHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.example.com")

	resp, err := newTestApp(&mockGemini{}).Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()

	exposed := strings.Split(resp.Header.Get(fiber.HeaderAccessControlExposeHeaders), ",")
	for _, want := range []string{"Content-Disposition", "X-Request-ID", "X-Image-Width", "X-Image-Height", "X-Source-Format"} {
		if !slices.Contains(exposed, want) {
			t.Errorf("Access-Control-Expose-Headers = %q, missing %s", exposed, want)
		}
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	resp, err := newTestApp(&mockGemini{}).Test(httptest.NewRequest(http.MethodGet, "/api/v1/languages", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()

	var body models.LanguageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Languages) != 5 || body.Default != "English" {
		t.Errorf("body = %+v", body)
	}
	if body.Languages[0] != (models.LanguageOption{Name: "English", Code: "en"}) {
		t.Errorf("first language = %+v", body.Languages[0])
	}
}

func TestNotFoundUsesJSONErrorHandler(t *testing.T) {
	t.Parallel()

	resp, err := newTestApp(&mockGemini{}).Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != fiber.StatusNotFound {
		t.Errorf("body = %+v", body)
	}
}
