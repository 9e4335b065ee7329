package remission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/remission"
)

func TestSummarize(t *testing.T) {
	sum := remission.Summarize(
		[]*entity.Sale{sale("100.00", "16.00"), sale("200.00", "32.00")},
		[]*entity.CreditAssignment{credit("50.00")},
	)
	assert.Equal(t, "348.00", sum.TotalSales.StringFixed(2))
	assert.Equal(t, "50.00", sum.TotalCredits.StringFixed(2))
	assert.Equal(t, "298.00", sum.Balance.StringFixed(2))
	assert.Equal(t, 2, sum.SalesCount)
}

func TestSummarize_Vacio(t *testing.T) {
	sum := remission.Summarize(nil, nil)
	assert.True(t, sum.TotalSales.IsZero())
	assert.True(t, sum.TotalCredits.IsZero())
	assert.True(t, sum.Balance.IsZero())
	assert.Equal(t, 0, sum.SalesCount)
}
