package api_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/dashboard"
	"github.com/garnizeh/portfolio/internal/forms"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
	"github.com/garnizeh/portfolio/pkg/upload"
)

type recordingShell struct {
	mu        sync.Mutex
	alerts    []string
	navigated []string
	confirm   bool
}

func (s *recordingShell) Alert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, msg)
}

func (s *recordingShell) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigated = append(s.navigated, path)
}

func (s *recordingShell) Confirm(string) bool { return s.confirm }

func pngFile(t *testing.T, name string) upload.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return upload.File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func TestCompetitionFormAgainstServer(t *testing.T) {
	s := newTestServer(t)
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	portfolio.SetLogger(discard)
	upload.SetLogger(discard)

	client, err := portfolio.NewClient(config.ClientConfig{
		APIURL:   s.URL + "/api",
		AdminURL: s.URL + "/admin",
		ImageURL: s.URL + "/uploads",
	}, s.Client())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	defer client.Close()

	if _, err := client.Login(t.Context(), "admin", "wrong"); err == nil || portfolio.Message(err) != "Invalid credentials" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := client.Login(t.Context(), "admin", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	shell := &recordingShell{confirm: true}
	var (
		progressMu sync.Mutex
		progress   []int
	)
	deps := forms.Deps{
		Shell:      shell,
		Uploader:   upload.NewClient(s.Client(), client.Token),
		Links:      client,
		Logger:     discard,
		OnProgress: func(p int) {
			progressMu.Lock()
			progress = append(progress, p)
			progressMu.Unlock()
		},
	}

	fc := forms.NewCompetitionController(client.Competitions(), deps, "")
	fc.Edit(func(f *forms.CompetitionForm) {
		f.Title = "Hackathon"
		f.Description = "48 hours"
		f.Date = "2024-05-01"
	})
	if err := fc.HandleFileEvent(forms.FileSelected{Field: "mainPhoto", Files: []upload.File{pngFile(t, "main.png")}}); err != nil {
		t.Fatalf("select main photo: %v", err)
	}
	if err := fc.HandleFileEvent(forms.FileSelected{Field: "gallery", Files: []upload.File{pngFile(t, "g1.png"), pngFile(t, "g2.png")}}); err != nil {
		t.Fatalf("select gallery: %v", err)
	}
	fc.WaitPreviews()
	if fc.MainPhoto.Preview() == "" {
		t.Fatalf("expected a rendered preview")
	}

	res, err := fc.Submit(t.Context())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(res.Failed()) != 0 {
		t.Fatalf("unexpected upload failures %#v", res.Failed())
	}
	if len(shell.navigated) != 1 || shell.navigated[0] != forms.AdminPath {
		t.Fatalf("expected navigation to %s, got %v", forms.AdminPath, shell.navigated)
	}
	if last := progress[len(progress)-1]; last != 100 {
		t.Fatalf("expected progress to end at 100, got %v", progress)
	}

	stored, err := client.Competitions().Get(t.Context(), res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.MainPhoto == "" || len(stored.Photos) != 2 {
		t.Fatalf("expected both upload channels to land, got %#v", stored)
	}

	// reopening the form prefills the stored main photo
	edit := forms.NewCompetitionController(client.Competitions(), deps, res.ID)
	if err := edit.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := edit.MainPhoto.Preview(), client.ImageURL(stored.MainPhoto); got != want {
		t.Fatalf("expected preview %q, got %q", want, got)
	}
	if edit.Form().Date != "2024-05-01" {
		t.Fatalf("unexpected date %q", edit.Form().Date)
	}

	dash := dashboard.New(client, shell, discard)
	if err := dash.Refresh(t.Context()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if dash.Counts().Competitions != 1 {
		t.Fatalf("expected 1 competition, got %#v", dash.Counts())
	}
	deleted, err := dash.Delete(t.Context(), models.KindCompetition, res.ID, stored.Title)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	if dash.Counts().Competitions != 0 {
		t.Fatalf("expected refreshed counts after delete, got %#v", dash.Counts())
	}
	if files := s.stored(t); len(files) != 0 {
		t.Fatalf("expected stored images removed, got %v", files)
	}
}
