package period

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestResolve(t *testing.T) {
	now := time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC)

	t.Run("empty request is the current period", func(t *testing.T) {
		p, err := Request{}.Resolve(now)
		require.NoError(t, err)
		assert.Equal(t, "2025-02-second", p.Key())
	})

	t.Run("explicit period", func(t *testing.T) {
		p, err := Request{Year: "2024", Month: "2", Half: " Second "}.Resolve(now)
		require.NoError(t, err)
		assert.Equal(t, 29, p.EndDate.Day())
		assert.Equal(t, "2024-02-second", p.Key())
	})

	t.Run("partial request is rejected", func(t *testing.T) {
		_, err := Request{Year: "2025", Month: "13"}.Resolve(now)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Contains(t, m, "year")
		assert.Contains(t, m, "half")
	})
}

func TestNewResponse_Label(t *testing.T) {
	p, err := Request{Year: "2025", Month: "1", Half: "second"}.Resolve(time.Now())
	require.NoError(t, err)

	resp := NewResponse(p)
	assert.Equal(t, "16-31 enero 2025", resp.Label)
	assert.Equal(t, "2025-01-16", resp.StartDate)
	assert.Equal(t, 1, resp.Month)
}
