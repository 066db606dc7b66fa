package dashboard

import (
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	counts := models.DashboardCounts{
		"normal_women":     10,
		"sam_women":        2,
		"high_bp_all":      3,
		"total_members":    90,
		"total_households": 40,
	}

	got := Sections(counts)
	require.Len(t, got, 3)

	assert.Equal(t, overviewTitle, got[0].Title)
	require.Len(t, got[0].Stats, 2)
	assert.Equal(t, "total_households", got[0].Stats[0].Key)
	assert.Equal(t, "total_members", got[0].Stats[1].Key)

	assert.Equal(t, "Nutrition", got[1].Title)
	require.Len(t, got[1].Stats, 2)
	assert.Equal(t, "sam_women", got[1].Stats[0].Key)
	assert.Equal(t, "SAM Women", got[1].Stats[0].Label)

	assert.Equal(t, "Blood Pressure", got[2].Title)
	assert.Equal(t, int64(3), got[2].Stats[0].Value)
}

func TestSections_Empty(t *testing.T) {
	assert.Empty(t, Sections(nil))
}
