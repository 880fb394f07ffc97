package service

import (
	"strings"
	"testing"
	"time"

	"wordscramble/internal/models"
)

func TestBuildReportBodies(t *testing.T) {
	completed := time.Now()
	session := &models.PlaySession{
		ID:          1,
		StartedAt:   completed.Add(-10 * time.Minute),
		CompletedAt: &completed,
		TotalRounds: 3,
		RoundsWon:   2,
		TotalPoints: 3,
	}
	rounds := []models.Round{
		{WordText: "cat", Solved: true, PointsEarned: 2},
		{WordText: "dog", Solved: true, HintUsed: true, PointsEarned: 1},
		{WordText: "fish"},
	}

	html, text := buildReportBodies(session, rounds, "http://localhost:8080")

	for _, body := range []struct {
		name    string
		content string
	}{{"html", html}, {"text", text}} {
		t.Run(body.name, func(t *testing.T) {
			for _, want := range []string{"2 of 3", "67%", "cat", "solved for 2 points", "hint used", "skipped", "http://localhost:8080"} {
				if !strings.Contains(body.content, want) {
					t.Errorf("report body missing %q", want)
				}
			}
		})
	}

	if !strings.Contains(html, "<table>") {
		t.Error("html body has no rounds table")
	}
	if strings.Contains(text, "<") {
		t.Error("text body contains markup")
	}
}

func TestBuildReportBodiesNoRounds(t *testing.T) {
	session := &models.PlaySession{ID: 2, StartedAt: time.Now()}
	html, text := buildReportBodies(session, nil, "http://localhost:8080")

	if !strings.Contains(html, "0 of 0") || !strings.Contains(text, "0 of 0") {
		t.Error("empty session totals not rendered")
	}
}
