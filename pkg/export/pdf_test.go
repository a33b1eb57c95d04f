package export

import (
	"testing"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPDF_Daywise(t *testing.T) {
	result, filter := daywiseFixture()

	artifact, err := BuildPDF(result, filter)
	require.NoError(t, err)

	assert.Equal(t, "Daywise_Report_SCT0001_15-01-2025.pdf", artifact.Name)
	assert.Equal(t, MIMEPDF, artifact.MIME)
	require.True(t, len(artifact.Content) > 4)
	assert.Equal(t, "%PDF", string(artifact.Content[:4]))
}

func TestBuildPDF_EmptyResultRefused(t *testing.T) {
	_, err := BuildPDF(domain.ReportResult{Type: domain.ReportDaywise}, domain.ReportFilter{})
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestBuildPDF_ManyRowsPaginate(t *testing.T) {
	result, filter := daywiseFixture()
	record := result.Records[0]
	for i := 0; i < 200; i++ {
		result.Records = append(result.Records, record)
	}

	artifact, err := BuildPDF(result, filter)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(artifact.Content[:4]))
}
