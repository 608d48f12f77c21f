package render

import (
	"strings"
	"testing"
	"time"

	"linkpage/internal/models"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if rn == nil || rn.landing == nil {
		t.Fatal("New() returned an incomplete renderer")
	}
}

func TestLandingDefaultDocument(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := rn.Landing(models.Default(), now)
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"MALTIXON",
		"Otwarty na współpracę",
		"592K", "65M+", "40K",
		"Subskrybentów",
		`href="https://tipply.pl/@Malti"`,
		`id="link-youtube"`,
		"--accent: #fbbf24",
		"© 2026",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("landing page should contain %q", want)
		}
	}
	if strings.Contains(html, `class="notice`) {
		t.Error("default document has no notifications")
	}
}

func TestLandingHidesInvisibleLinks(t *testing.T) {
	rn, _ := New()
	doc := models.Default()
	doc.Links[2].Visible = false

	out, err := rn.Landing(doc, now)
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if strings.Contains(string(out), `id="link-discord"`) {
		t.Error("hidden link should not be rendered")
	}
}

func TestLandingNotifications(t *testing.T) {
	rn, _ := New()
	doc := models.Default()
	doc.Notifications = []models.Notification{
		{ID: "live", Variant: models.VariantStream, Title: "Live", Message: "**Jestem live!**", Visible: true, Dismissible: true},
		{ID: "hidden", Variant: models.VariantInfo, Title: "Hidden", Visible: false},
		{ID: "expired", Variant: models.VariantAlert, Title: "Expired", Visible: true, ExpiresAt: "2026-04-01T00:00:00Z"},
		{ID: "odd", Variant: "banner", Title: "Odd", Visible: true, URL: "https://example.com", URLLabel: "Więcej"},
	}

	out, err := rn.Landing(doc, now)
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "<strong>Jestem live!</strong>") {
		t.Error("notification message should be rendered as Markdown")
	}
	if !strings.Contains(html, `data-dismiss="live"`) {
		t.Error("dismissible notification should have a close button")
	}
	if strings.Contains(html, "Hidden") || strings.Contains(html, "Expired") {
		t.Error("hidden and expired notifications should not be rendered")
	}
	if !strings.Contains(html, "notice--info") {
		t.Error("unknown variant should fall back to info styling")
	}
	if !strings.Contains(html, ">Więcej</a>") {
		t.Error("notification link label should be rendered")
	}
}

func TestLandingEscapesContent(t *testing.T) {
	rn, _ := New()
	doc := models.Default()
	doc.Profile.Name = `<script>alert(1)</script>`
	doc.Links[0].URL = "javascript:alert(1)"

	out, err := rn.Landing(doc, now)
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("profile name must be escaped")
	}
	if strings.Contains(html, `href="javascript:alert(1)"`) {
		t.Error("javascript: URLs must be neutralised")
	}
}

func TestSafeColor(t *testing.T) {
	tests := map[string]string{
		"#fff":                  "--accent: #fff",
		"#6c63ff":               "--accent: #6c63ff",
		"red":                   "",
		"#12345":                "",
		"#zzzzzz":               "",
		"#fff;background:url()": "",
	}
	for in, want := range tests {
		if got := string(safeColor(in)); got != want {
			t.Errorf("safeColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewLandingDataStatsOrder(t *testing.T) {
	data := NewLandingData(models.Default(), now)
	if len(data.Stats) != 3 {
		t.Fatalf("stats: got %d, want 3", len(data.Stats))
	}
	if data.Stats[0].ID != models.MetricSubscribers || data.Stats[2].ID != models.MetricFollowers {
		t.Errorf("unexpected order: %v", data.Stats)
	}
}
