package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/law-makers/leadgen/pkg/models"
)

func TestChooseCEO(t *testing.T) {
	tests := []struct {
		name     string
		officers []models.Officer
		want     string
	}{
		{
			"title priority beats list order",
			[]models.Officer{
				{Name: "Jo Director", Role: "Director"},
				{Name: "Sam Chief", Role: "Chief Executive Officer"},
			},
			"Sam Chief",
		},
		{
			"managing director over plain director",
			[]models.Officer{
				{Name: "Jo Director", Role: "Director"},
				{Name: "Pat Boss", Role: "Managing Director"},
			},
			"Pat Boss",
		},
		{
			"fallback to first officer",
			[]models.Officer{
				{Name: "Alex Secretary", Role: "Company Secretary"},
				{Name: "Kim Member", Role: "LLP Member"},
			},
			"Alex Secretary",
		},
		{"empty list", nil, ""},
		{
			"blank names skipped",
			[]models.Officer{
				{Name: "  ", Role: "Director"},
				{Name: "Jo Real", Role: "Director"},
			},
			"Jo Real",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseCEO(tt.officers))
		})
	}
}

func TestHasSeniorOfficer(t *testing.T) {
	assert.True(t, hasSeniorOfficer([]models.Officer{{Name: "Jo", Role: "Director"}}))
	assert.True(t, hasSeniorOfficer([]models.Officer{{Name: "Jo", Role: "Managing Director"}}))
	// Substring roles do not qualify for the boost.
	assert.False(t, hasSeniorOfficer([]models.Officer{{Name: "Jo", Role: "Marketing Director"}}))
	assert.False(t, hasSeniorOfficer(nil))
}
