package contribution

import (
	"testing"
	"time"
)

func TestToResponseTimestampsAreUTC(t *testing.T) {
	lima := time.FixedZone("America/Lima", -5*60*60)
	c := &Contribution{
		ID:            "c1",
		GroupID:       "g1",
		ContributorID: "alice",
		Amount:        10,
		CreatedAt:     time.Date(2026, 3, 1, 19, 30, 0, 0, lima),
		UpdatedAt:     time.Date(2026, 3, 2, 1, 0, 0, 0, lima),
	}

	resp := c.ToResponse()
	if resp.CreatedAt != "2026-03-02T00:30:00Z" {
		t.Errorf("CreatedAt = %q, want 2026-03-02T00:30:00Z", resp.CreatedAt)
	}
	if resp.UpdatedAt != "2026-03-02T06:00:00Z" {
		t.Errorf("UpdatedAt = %q, want 2026-03-02T06:00:00Z", resp.UpdatedAt)
	}
}
